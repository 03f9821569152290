package redisengine

// DefaultKeyPrefix is used when no prefix is configured.
const DefaultKeyPrefix = "roadmap:notes"

type keys struct {
	prefix string
}

func (k keys) data(id string) string {
	return k.prefix + ":data:" + id
}

func (k keys) all() string {
	return k.prefix + ":index:all"
}

func (k keys) category(category string) string {
	return k.prefix + ":index:category:" + category
}

func (k keys) priority(priority string) string {
	return k.prefix + ":index:priority:" + priority
}

func (k keys) timeline(timeline string) string {
	return k.prefix + ":index:timeline:" + timeline
}
