package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/VendaBot/app/models"
)

func (ac *APIController) HandleListTiers(c *fiber.Ctx) error {
	tiers, err := ac.repos.SubscriptionTier.List(c.UserContext())
	if err != nil {
		return ac.handleError(c, "Subscription tier", err)
	}
	return c.JSON(tiers)
}

func (ac *APIController) HandleGetTier(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid tier id")
	}
	tier, err := ac.repos.SubscriptionTier.GetByID(c.UserContext(), id)
	if err != nil {
		return ac.handleError(c, "Subscription tier", err)
	}
	return c.JSON(tier)
}

func (ac *APIController) HandleCreateTier(c *fiber.Ctx) error {
	var in models.SubscriptionTierInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	tier := in.ToTier()
	if err := ac.repos.SubscriptionTier.Create(c.UserContext(), tier); err != nil {
		return ac.handleError(c, "Subscription tier", err)
	}
	return c.Status(fiber.StatusCreated).JSON(tier)
}

func (ac *APIController) HandleUpdateTier(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid tier id")
	}
	var patch models.SubscriptionTierPatch
	if ok, err := parseBody(c, &patch); !ok {
		return err
	}
	tier, err := ac.repos.SubscriptionTier.Update(c.UserContext(), id, patch)
	if err != nil {
		return ac.handleError(c, "Subscription tier", err)
	}
	return c.JSON(tier)
}

func (ac *APIController) HandleListServerSubscriptions(c *fiber.Ctx) error {
	subs, err := ac.repos.ServerSubscription.List(c.UserContext())
	if err != nil {
		return ac.handleError(c, "Subscription", err)
	}
	return c.JSON(subs)
}

// HandleGetActiveSubscription returns the server's active subscription with its tier.
func (ac *APIController) HandleGetActiveSubscription(c *fiber.Ctx) error {
	serverID, ok := paramID(c, "serverId")
	if !ok {
		return badRequest(c, "invalid server id")
	}
	sub, err := ac.repos.ServerSubscription.GetActive(c.UserContext(), serverID)
	if err != nil {
		return ac.handleError(c, "Active subscription", err)
	}
	tier, err := ac.repos.SubscriptionTier.GetByID(c.UserContext(), sub.TierID)
	if err != nil {
		return ac.handleError(c, "Subscription tier", err)
	}
	return c.JSON(fiber.Map{"subscription": sub, "tier": tier})
}

// HandleCreateServerSubscription stores a subscription. An active one replaces
// the server's previous active subscription.
func (ac *APIController) HandleCreateServerSubscription(c *fiber.Ctx) error {
	var in models.ServerSubscriptionInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	sub := in.ToSubscription()
	if err := ac.repos.ServerSubscription.Create(c.UserContext(), sub); err != nil {
		return ac.handleError(c, "Server or tier", err)
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

func (ac *APIController) HandleUpdateServerSubscription(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid subscription id")
	}
	var patch models.ServerSubscriptionPatch
	if ok, err := parseBody(c, &patch); !ok {
		return err
	}
	sub, err := ac.repos.ServerSubscription.Update(c.UserContext(), id, patch)
	if err != nil {
		return ac.handleError(c, "Subscription", err)
	}
	return c.JSON(sub)
}
