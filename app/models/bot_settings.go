package models

// BotSettings holds the per-server automation flags. Settings is replaced as
// a whole on every write.
type BotSettings struct {
	ID       uint           `json:"id"`
	ServerID uint           `json:"serverId"`
	Settings map[string]any `json:"settings"`
}

func (b BotSettings) Clone() BotSettings {
	b.Settings = CloneSettings(b.Settings)
	return b
}

// CloneSettings copies the top level of a settings blob. Nested values are
// shared; the bot only ever writes scalar flags.
func CloneSettings(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Enabled reports whether a boolean flag is set to true.
func (b *BotSettings) Enabled(key string) bool {
	v, ok := b.Settings[key].(bool)
	return ok && v
}
