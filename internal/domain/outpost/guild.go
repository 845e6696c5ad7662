package outpost

// GuildDirectory resolves the weak guild reference of an outpost. Names are
// only used in messages.
type GuildDirectory interface {
	GuildName(id string) (string, bool)
}

type StaticGuilds map[string]string

func (g StaticGuilds) GuildName(id string) (string, bool) {
	name, ok := g[id]
	return name, ok
}

func DisplayGuild(dir GuildDirectory, id string) string {
	if id == "" {
		return "no guild"
	}
	if dir != nil {
		if name, ok := dir.GuildName(id); ok {
			return name
		}
	}
	return "guild " + id
}
