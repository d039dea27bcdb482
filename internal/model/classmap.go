package model

// ClassMap is an ordered map from class name to ClassModel.
//
// Put follows last-write-wins: a second Put under the same name replaces the
// whole model but keeps the position of the first insertion, so iteration
// order is the order in which names were first seen.
type ClassMap struct {
	order   []string
	classes map[string]*ClassModel
}

// NewClassMap returns an empty map.
func NewClassMap() *ClassMap {
	return &ClassMap{classes: map[string]*ClassModel{}}
}

// Put stores c under c.Name and reports whether an earlier entry was replaced.
func (m *ClassMap) Put(c *ClassModel) (replaced bool) {
	if _, ok := m.classes[c.Name]; ok {
		replaced = true
	} else {
		m.order = append(m.order, c.Name)
	}
	m.classes[c.Name] = c
	return replaced
}

// Get returns the model stored under name.
func (m *ClassMap) Get(name string) (*ClassModel, bool) {
	c, ok := m.classes[name]
	return c, ok
}

// Has reports whether name is a key of the map.
func (m *ClassMap) Has(name string) bool {
	_, ok := m.classes[name]
	return ok
}

// Len returns the number of classes.
func (m *ClassMap) Len() int {
	return len(m.order)
}

// Names returns the keys in iteration order.
func (m *ClassMap) Names() []string {
	return append([]string(nil), m.order...)
}

// Each calls fn for every class in iteration order.
func (m *ClassMap) Each(fn func(*ClassModel)) {
	for _, name := range m.order {
		fn(m.classes[name])
	}
}
