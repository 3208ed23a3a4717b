package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cmmoran/creatorgen/internal/model"
)

func ctor(pos int, names ...string) model.ConstructorDescriptor {
	c := model.ConstructorDescriptor{Pos: int64(pos)}
	for _, n := range names {
		c.Parameters = append(c.Parameters, intParam(n))
	}
	return c
}

func TestSelectConstructor(t *testing.T) {
	tests := []struct {
		name  string
		ctors []model.ConstructorDescriptor
		want  []string
	}{
		{name: "no constructors", ctors: nil, want: nil},
		{name: "more parameters wins", ctors: []model.ConstructorDescriptor{ctor(10, "a"), ctor(20, "a", "b")}, want: []string{"a", "b"}},
		{name: "more parameters wins regardless of order", ctors: []model.ConstructorDescriptor{ctor(20, "a", "b", "c"), ctor(10, "a")}, want: []string{"a", "b", "c"}},
		{name: "tie goes to earliest position", ctors: []model.ConstructorDescriptor{ctor(30, "x", "y"), ctor(10, "a", "b")}, want: []string{"a", "b"}},
		{name: "tie without positions keeps provider order", ctors: []model.ConstructorDescriptor{ctor(0, "x", "y"), ctor(0, "a", "b")}, want: []string{"x", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectConstructor(&model.TypeDescriptor{Constructors: tt.ctors})
			var names []string
			for _, p := range got.Parameters {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestSelectConstructor_DoesNotReorderDescriptor(t *testing.T) {
	desc := &model.TypeDescriptor{Constructors: []model.ConstructorDescriptor{ctor(1, "a"), ctor(2, "a", "b")}}
	SelectConstructor(desc)
	assert.Len(t, desc.Constructors[0].Parameters, 1)
}

func TestResultType(t *testing.T) {
	assert.Nil(t, ResultType(nil))

	got := ResultType(accountType())
	if assert.NotNil(t, got) {
		assert.Equal(t, "Bank.Contracts.IAccount", got.FullName())
	}

	got = ResultType(personType())
	if assert.NotNil(t, got) {
		assert.Equal(t, "People.Person", got.FullName())
	}
}
