package scenarios

import (
	"testing"

	"github.com/parley-irc/parley/internal/demo"
)

func TestBuiltinScenariosAreValid(t *testing.T) {
	for _, s := range All() {
		t.Run(s.Name, func(t *testing.T) {
			if err := s.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
			if _, err := demo.NewRunner(s); err != nil {
				t.Errorf("NewRunner() error = %v", err)
			}
			if len(s.Steps) == 0 {
				t.Error("scenario has no steps")
			}
			if s.Description == "" {
				t.Error("scenario has no description")
			}
		})
	}
}

func TestGet(t *testing.T) {
	if s := Get("basic"); s == nil {
		t.Error("Get(basic) = nil")
	}
	if s := Get("busy"); s == nil {
		t.Error("Get(busy) = nil")
	}
	if s := Get("nonexistent"); s != nil {
		t.Errorf("Get(nonexistent) = %v, want nil", s)
	}
}
