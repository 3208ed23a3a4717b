package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cmmoran/creatorgen/internal/model"
)

func TestEmit_Idempotent(t *testing.T) {
	unit := &model.GenerationUnit{
		Declaration: model.AnnotatedDeclaration{
			Declaration: &model.Declaration{Name: "PersonTests", Namespace: "People.Tests"},
		},
		Target:      personType().Ref,
		ResultType:  &personType().Ref,
		Constructor: personType().Constructors[1],
		Imports:     []string{"Moq", "People"},
	}
	first := Emit(unit, Moq{})
	for range 10 {
		assert.Equal(t, first, Emit(unit, Moq{}))
	}
}

func TestEmit_DegenerateUnit(t *testing.T) {
	unit := &model.GenerationUnit{
		Declaration: model.AnnotatedDeclaration{
			Declaration: &model.Declaration{Name: "Fixture", Keyword: "record struct", Accessibility: "  "},
		},
		Target: model.TypeRef{Name: "Widget"},
	}
	requireText(t, `#nullable enable

public partial record struct Fixture
{
    private static object CreateWidget(MockBehavior defaultBehavior = MockBehavior.Loose
    )
    {
        return new Widget(
        );
    }
}
`, Emit(unit, Moq{}))
}

func TestMarker(t *testing.T) {
	m := Marker{Name: "BuildAttribute"}
	assert.Equal(t, "BuildAttribute", m.QualifiedName())
	assert.Equal(t, "BuildAttribute.g.cs", m.FileKey("cs"))
	requireText(t, `#nullable enable
using System;
[AttributeUsage(AttributeTargets.Class | AttributeTargets.Struct)]
public class BuildAttribute : Attribute
{
    public Type? Target;
}
`, m.Definition())
}

func TestStandInFor(t *testing.T) {
	s, err := StandInFor("Moq")
	assert.NoError(t, err)
	assert.Equal(t, "Moq", s.Namespace())

	_, err = StandInFor("nsubstitute")
	assert.ErrorIs(t, err, ErrUnknownStandIn)
	assert.ErrorContains(t, err, "fakeiteasy, moq")
}
