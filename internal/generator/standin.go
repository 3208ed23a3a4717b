package generator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cmmoran/creatorgen/internal/model"
)

var ErrUnknownStandIn = errors.New("unknown stand-in strategy")

// BehaviorParameter is the leading factory parameter selecting how
// generated stand-ins behave.
type BehaviorParameter struct {
	Type    string
	Name    string
	Default string
}

// StandIn renders substitutes for dependencies a caller did not supply.
type StandIn interface {
	Namespace() string
	Behavior() BehaviorParameter
	Expression(t model.TypeRef, behavior string) string
}

// Moq uses Mock.Of<T>(MockBehavior).
type Moq struct{}

func (Moq) Namespace() string { return "Moq" }

func (Moq) Behavior() BehaviorParameter {
	return BehaviorParameter{Type: "MockBehavior", Name: "defaultBehavior", Default: "MockBehavior.Loose"}
}

func (Moq) Expression(t model.TypeRef, behavior string) string {
	return fmt.Sprintf("Mock.Of<%s>(%s)", t.TypeText(), behavior)
}

// FakeItEasy uses A.Fake<T>(), strict when the behavior flag is set.
type FakeItEasy struct{}

func (FakeItEasy) Namespace() string { return "FakeItEasy" }

func (FakeItEasy) Behavior() BehaviorParameter {
	return BehaviorParameter{Type: "bool", Name: "strictFakes", Default: "false"}
}

func (FakeItEasy) Expression(t model.TypeRef, behavior string) string {
	text := t.TypeText()
	return fmt.Sprintf("(%s ? A.Fake<%s>(o => o.Strict()) : A.Fake<%s>())", behavior, text, text)
}

var standIns = map[string]StandIn{
	"moq":        Moq{},
	"fakeiteasy": FakeItEasy{},
}

// StandInFor returns the registered strategy called name.
func StandInFor(name string) (StandIn, error) {
	s, ok := standIns[strings.ToLower(name)]
	if !ok {
		names := make([]string, 0, len(standIns))
		for n := range standIns {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownStandIn, name, strings.Join(names, ", "))
	}
	return s, nil
}
