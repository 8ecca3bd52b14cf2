package collections

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolverResolve(t *testing.T) {
	r := NewResolver(DefaultCollections)

	tests := []struct {
		label string
		want  string
		ok    bool
	}{
		{"Serveis", "records_serveis", true},
		{"servei de sala", "records_serveis", true},
		{"SERV.", "records_serveis", true},
		{"Logística", "records_logistica", true},
		{"logistica", "records_logistica", true},
		{"Cuina", "records_cuina", true},
		{"Producció", "records_produccio", true},
		{"prod", "records_produccio", true},
		{"Comptabilitat", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := r.Resolve(tt.label)
		assert.Equal(t, tt.ok, ok, "label %q", tt.label)
		assert.Equal(t, tt.want, got, "label %q", tt.label)
	}
}

func TestResolverAll(t *testing.T) {
	r := NewResolver(DefaultCollections)
	all := r.All()
	assert.Len(t, all, 4)
	assert.Equal(t, []string{"records_cuina", "records_logistica", "records_produccio", "records_serveis"}, all)

	for _, name := range all {
		assert.True(t, r.Known(name))
	}
	assert.False(t, r.Known("records_whatever"))
}

type stubSettings struct {
	hours int
	err   error
}

func (s *stubSettings) GetMinRestHours(string) (int, error) {
	return s.hours, s.err
}

func TestRestPolicyFallsBack(t *testing.T) {
	// no cache wired: straight to the source
	p := NewRestPolicy(&stubSettings{hours: 10}, nil, 0, 0, 8)
	assert.Equal(t, 10, p.MinRestHours("records_serveis"))

	p = NewRestPolicy(&stubSettings{err: errors.New("store down")}, nil, 0, 0, 8)
	assert.Equal(t, 8, p.MinRestHours("records_serveis"))

	p = NewRestPolicy(&stubSettings{hours: 0}, nil, 0, 0, 8)
	assert.Equal(t, 8, p.MinRestHours("records_serveis"))
}
