package roadmap

// itemCollection manages the items of an initiative and re-exposes the events they carry.
type itemCollection struct {
	items collection[Item]
}

func newItemCollection(items ...Item) itemCollection {
	c := itemCollection{}
	for _, item := range items {
		c = c.add(item)
	}

	return c
}

func (c itemCollection) add(item Item) itemCollection {
	return itemCollection{items: c.items.with(item.ID(), item)}
}

func (c itemCollection) remove(itemID string) (itemCollection, bool) {
	if !c.items.has(itemID) {
		return c, false
	}

	return itemCollection{items: c.items.without(itemID)}, true
}

func (c itemCollection) get(itemID string) (Item, bool) {
	return c.items.get(itemID)
}

func (c itemCollection) all() []Item {
	return c.items.values()
}

func (c itemCollection) count() int {
	return c.items.len()
}

func (c itemCollection) events() DomainEvents {
	var out DomainEvents
	for _, item := range c.items.values() {
		out = append(out, item.PendingEvents()...)
	}

	return out
}
