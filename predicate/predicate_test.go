/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package predicate

import (
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qerrors "github.com/suparena/querycache/errors"
)

func TestParseTerm(t *testing.T) {
	t.Run("PlainFieldIsExact", func(t *testing.T) {
		p := Where("Status", "active")
		require.NoError(t, p.Err())
		require.Len(t, p.Constraints(), 1)
		c := p.Constraints()[0]
		assert.Equal(t, "Status", c.Field)
		assert.Equal(t, Exact, c.Lookup)
	})

	t.Run("FieldWithLookup", func(t *testing.T) {
		p := Where("Score__gte", 100)
		require.NoError(t, p.Err())
		c := p.Constraints()[0]
		assert.Equal(t, "Score", c.Field)
		assert.Equal(t, GreaterEq, c.Lookup)
	})

	t.Run("UnknownLookup", func(t *testing.T) {
		p := Where("Score__between", 100)
		assert.True(t, qerrors.IsValidationError(p.Err()))
	})

	t.Run("RelationSpanningTermRejected", func(t *testing.T) {
		p := Where("Owner__Club__Name", "x")
		assert.True(t, qerrors.IsValidationError(p.Err()))
	})

	t.Run("RelationLikeTailMentionsRelationships", func(t *testing.T) {
		p := Where("Owner__Name", "x")
		require.Error(t, p.Err())
		assert.True(t, qerrors.IsValidationError(p.Err()))
		assert.Contains(t, p.Err().Error(), "relationships")
	})

	t.Run("EmptyTerm", func(t *testing.T) {
		p := Where("", 1)
		assert.True(t, qerrors.IsValidationError(p.Err()))
	})

	t.Run("ParseErrorSurvivesChaining", func(t *testing.T) {
		p := Where("a__bogus", 1).Where("b", 2)
		assert.Error(t, p.Err())
		assert.Len(t, p.Constraints(), 2)
	})
}

func TestConstraintMatch(t *testing.T) {
	match := func(t *testing.T, term string, constraintValue, fieldValue any) bool {
		t.Helper()
		p := Where(term, constraintValue)
		require.NoError(t, p.Err())
		ok, err := p.Constraints()[0].Match(fieldValue)
		require.NoError(t, err)
		return ok
	}

	t.Run("Exact", func(t *testing.T) {
		assert.True(t, match(t, "Name", "ana", "ana"))
		assert.False(t, match(t, "Name", "ana", "Ana"))
		assert.True(t, match(t, "Score", 42, 42))
		assert.True(t, match(t, "Score", 42, int32(42)))
		assert.True(t, match(t, "Score", 42.0, 42))
	})

	t.Run("IExact", func(t *testing.T) {
		assert.True(t, match(t, "Name__iexact", "ANA", "ana"))
	})

	t.Run("Comparisons", func(t *testing.T) {
		assert.True(t, match(t, "Score__gt", 10, 11))
		assert.False(t, match(t, "Score__gt", 10, 10))
		assert.True(t, match(t, "Score__gte", 10, 10))
		assert.True(t, match(t, "Score__lt", 10, 9))
		assert.True(t, match(t, "Score__lte", 10, 10))
		assert.True(t, match(t, "Name__lt", "b", "a"))
	})

	t.Run("StringLookups", func(t *testing.T) {
		assert.True(t, match(t, "Name__contains", "na", "anatoly"))
		assert.True(t, match(t, "Name__icontains", "NA", "anatoly"))
		assert.True(t, match(t, "Name__startswith", "ana", "anatoly"))
		assert.True(t, match(t, "Name__istartswith", "ANA", "anatoly"))
		assert.True(t, match(t, "Name__endswith", "ly", "anatoly"))
		assert.True(t, match(t, "Name__iendswith", "LY", "anatoly"))
		assert.False(t, match(t, "Name__startswith", "toly", "anatoly"))
	})

	t.Run("In", func(t *testing.T) {
		assert.True(t, match(t, "Status__in", []string{"active", "idle"}, "idle"))
		assert.False(t, match(t, "Status__in", []string{"active"}, "gone"))
		assert.True(t, match(t, "Score__in", []int{1, 2, 3}, 2))
	})

	t.Run("Range", func(t *testing.T) {
		assert.True(t, match(t, "Score__range", []int{10, 20}, 15))
		assert.True(t, match(t, "Score__range", []int{10, 20}, 10))
		assert.True(t, match(t, "Score__range", []int{10, 20}, 20))
		assert.False(t, match(t, "Score__range", []int{10, 20}, 21))
	})

	t.Run("DateParts", func(t *testing.T) {
		ts := time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)
		assert.True(t, match(t, "CreatedAt__year", 2024, ts))
		assert.True(t, match(t, "CreatedAt__month", 3, ts))
		assert.True(t, match(t, "CreatedAt__day", 9, ts))
		assert.False(t, match(t, "CreatedAt__year", 2023, ts))
	})

	t.Run("StrfmtDateTimeNormalizes", func(t *testing.T) {
		ts := time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)
		dt := strfmt.DateTime(ts)
		assert.True(t, match(t, "CreatedAt__year", 2024, dt))
		assert.True(t, match(t, "CreatedAt", ts, &dt))
	})

	t.Run("IsNull", func(t *testing.T) {
		var nilPtr *string
		val := "x"
		assert.True(t, match(t, "SiteURL__isnull", true, nilPtr))
		assert.False(t, match(t, "SiteURL__isnull", true, &val))
		assert.True(t, match(t, "SiteURL__isnull", false, &val))
	})

	t.Run("PointerFieldsNormalize", func(t *testing.T) {
		n := 42
		assert.True(t, match(t, "Score", 42, &n))
	})

	t.Run("Negated", func(t *testing.T) {
		p := Where("Status", "active").Not()
		ok, err := p.Constraints()[0].Match("idle")
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = p.Constraints()[0].Match("active")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("TypeMismatchIsValidationError", func(t *testing.T) {
		p := Where("Score__gt", "ten")
		ok, err := p.Constraints()[0].Match(5)
		assert.False(t, ok)
		assert.True(t, qerrors.IsValidationError(err))
	})
}

func TestPredicateCombinators(t *testing.T) {
	t.Run("And", func(t *testing.T) {
		p := Where("a", 1).And(Where("b", 2))
		require.NoError(t, p.Err())
		assert.Len(t, p.Constraints(), 2)
	})

	t.Run("AndCarriesError", func(t *testing.T) {
		p := Where("a", 1).And(Where("b__bogus", 2))
		assert.Error(t, p.Err())
	})

	t.Run("WhereDoesNotMutateReceiver", func(t *testing.T) {
		base := Where("a", 1)
		_ = base.Where("b", 2)
		assert.Len(t, base.Constraints(), 1)
	})

	t.Run("String", func(t *testing.T) {
		p := Where("a", 1).Where("b__gte", 2).Not()
		assert.Equal(t, "not(a__exact=1) AND not(b__gte=2)", p.String())
	})
}
