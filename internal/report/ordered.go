package report

// orderedMap keeps values keyed by string in first-insertion order.
type orderedMap[V any] struct {
	keys   []string
	values map[string]*V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{values: make(map[string]*V)}
}

// entry returns the value stored under key, creating a zero value on first sight.
func (m *orderedMap[V]) entry(key string) *V {
	if v, ok := m.values[key]; ok {
		return v
	}
	v := new(V)
	m.keys = append(m.keys, key)
	m.values[key] = v
	return v
}

func (m *orderedMap[V]) each(fn func(key string, v *V)) {
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

func (m *orderedMap[V]) len() int {
	return len(m.keys)
}
