package bot

import (
	"math"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// Options wraps the option tree of an interaction. The accessors never panic
// on a type mismatch; they report the value as absent instead.
type Options []*discordgo.ApplicationCommandInteractionDataOption

func (o Options) find(name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range o {
		if opt != nil && opt.Name == name {
			return opt
		}
	}
	return nil
}

// Subcommand returns the selected subcommand and its options.
func (o Options) Subcommand() (string, Options) {
	for _, opt := range o {
		if opt != nil && opt.Type == discordgo.ApplicationCommandOptionSubCommand {
			return opt.Name, Options(opt.Options)
		}
	}
	return "", nil
}

func (o Options) String(name string) (string, bool) {
	opt := o.find(name)
	if opt == nil {
		return "", false
	}
	switch v := opt.Value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Float accepts JSON numbers and numeric strings.
func (o Options) Float(name string) (float64, bool) {
	opt := o.find(name)
	if opt == nil {
		return 0, false
	}
	switch v := opt.Value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Int accepts whole numbers only.
func (o Options) Int(name string) (int64, bool) {
	f, ok := o.Float(name)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

func (o Options) Bool(name string) (bool, bool) {
	opt := o.find(name)
	if opt == nil {
		return false, false
	}
	v, ok := opt.Value.(bool)
	return v, ok
}

// ID returns a snowflake option (user, channel, role) as its string id.
func (o Options) ID(name string) (string, bool) {
	opt := o.find(name)
	if opt == nil {
		return "", false
	}
	v, ok := opt.Value.(string)
	return v, ok && v != ""
}

// StringOpt and friends build option values; used when replaying
// interactions and in tests.
func StringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

func NumberOpt(name string, value float64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionNumber, Value: value}
}

func BoolOpt(name string, value bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionBoolean, Value: value}
}

func UserOpt(name, id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionUser, Value: id}
}

func ChannelOpt(name, id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionChannel, Value: id}
}

func SubcommandOpt(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionSubCommand, Options: opts}
}
