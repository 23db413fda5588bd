package models

const DefaultCommandIcon = "fas fa-robot"

// Command mirrors a registered slash command and its usage counter.
type Command struct {
	ID                   uint    `json:"id"`
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	Usage                *string `json:"usage"`
	Category             *string `json:"category"`
	MinSubscriptionLevel int     `json:"minSubscriptionLevel"`
	IsActive             bool    `json:"isActive"`
	UsageCount           int64   `json:"usageCount"`
	Icon                 string  `json:"icon"`
}

func (c Command) Clone() Command {
	c.Usage = clonePtr(c.Usage)
	c.Category = clonePtr(c.Category)
	return c
}

type CommandInput struct {
	Name                 string  `json:"name" validate:"required,min=1,max=32"`
	Description          string  `json:"description" validate:"required,max=100"`
	Usage                *string `json:"usage" validate:"omitempty,max=200"`
	Category             *string `json:"category" validate:"omitempty,max=50"`
	MinSubscriptionLevel *int    `json:"minSubscriptionLevel" validate:"omitempty,min=1,max=3"`
	IsActive             *bool   `json:"isActive"`
	UsageCount           *int64  `json:"usageCount" validate:"omitempty,min=0"`
	Icon                 *string `json:"icon" validate:"omitempty,max=50"`
}

func (in *CommandInput) Validate() error {
	return validate.Struct(in)
}

func (in *CommandInput) ToCommand() *Command {
	c := &Command{
		Name:                 in.Name,
		Description:          in.Description,
		Usage:                in.Usage,
		Category:             in.Category,
		MinSubscriptionLevel: 1,
		IsActive:             true,
		Icon:                 DefaultCommandIcon,
	}
	if in.MinSubscriptionLevel != nil {
		c.MinSubscriptionLevel = *in.MinSubscriptionLevel
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if in.UsageCount != nil {
		c.UsageCount = *in.UsageCount
	}
	if in.Icon != nil {
		c.Icon = *in.Icon
	}
	return c
}

// CommandPatch does not carry the usage counter; it only moves through
// IncrementUsage.
type CommandPatch struct {
	Description          *string `json:"description" validate:"omitempty,min=1,max=100"`
	Usage                *string `json:"usage" validate:"omitempty,max=200"`
	Category             *string `json:"category" validate:"omitempty,max=50"`
	MinSubscriptionLevel *int    `json:"minSubscriptionLevel" validate:"omitempty,min=1,max=3"`
	IsActive             *bool   `json:"isActive"`
	Icon                 *string `json:"icon" validate:"omitempty,max=50"`
}

func (p *CommandPatch) Validate() error {
	return validate.Struct(p)
}

func (p *CommandPatch) Apply(c *Command) {
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Usage != nil {
		c.Usage = clonePtr(p.Usage)
	}
	if p.Category != nil {
		c.Category = clonePtr(p.Category)
	}
	if p.MinSubscriptionLevel != nil {
		c.MinSubscriptionLevel = *p.MinSubscriptionLevel
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
}
