/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/querycache/errors"
	"github.com/suparena/querycache/predicate"
	"github.com/suparena/querycache/registry"
)

// Select scans the table for records of type T matching the predicate.
// Constraints are translated to a DynamoDB filter expression; lookups the
// expression language cannot express (case-insensitive matching, date
// components) return an UnsupportedLookupError. An empty predicate retrieves
// every record of the type.
func (d *DynamodbDataStore[T]) Select(ctx context.Context, pred predicate.Predicate) ([]T, error) {
	if err := pred.Err(); err != nil {
		return nil, err
	}

	expr, err := buildFilterExpression[T](pred)
	if err != nil {
		return nil, err
	}

	var results []T
	var startKey map[string]types.AttributeValue
	for {
		out, err := d.client.Scan(ctx, &sdk.ScanInput{
			TableName:                 &d.tableName,
			FilterExpression:          &expr.filter,
			ExpressionAttributeNames:  expr.names,
			ExpressionAttributeValues: expr.values,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}

		for _, item := range out.Items {
			record := new(T)
			if err := attributevalue.UnmarshalMap(item, record); err != nil {
				return nil, fmt.Errorf("failed to unmarshal item: %w", err)
			}
			results = append(results, *record)
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return results, nil
}

// filterExpression is an assembled DynamoDB filter with its placeholder maps.
type filterExpression struct {
	filter string
	names  map[string]string
	values map[string]types.AttributeValue
}

// buildFilterExpression renders the predicate conjunction into placeholder
// clauses, always anchored on the EntityType attribute.
func buildFilterExpression[T any](pred predicate.Predicate) (*filterExpression, error) {
	expr := &filterExpression{
		names: map[string]string{"#etype": entityTypeAttr},
		values: map[string]types.AttributeValue{
			":etype": &types.AttributeValueMemberS{Value: registry.TypeName[T]()},
		},
	}
	clauses := []string{"#etype = :etype"}

	for i, c := range pred.Constraints() {
		clause, err := expr.renderConstraint(i, c)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}

	expr.filter = strings.Join(clauses, " AND ")
	return expr, nil
}

func (e *filterExpression) renderConstraint(i int, c predicate.Constraint) (string, error) {
	namePH := fmt.Sprintf("#f%d", i)
	valuePH := fmt.Sprintf(":v%d", i)
	e.names[namePH] = c.Field

	var clause string
	switch c.Lookup {
	case predicate.Exact:
		if err := e.bind(valuePH, c.Value); err != nil {
			return "", err
		}
		clause = fmt.Sprintf("%s = %s", namePH, valuePH)

	case predicate.GreaterThan, predicate.GreaterEq, predicate.LessThan, predicate.LessEq:
		if err := e.bind(valuePH, c.Value); err != nil {
			return "", err
		}
		op := map[predicate.Lookup]string{
			predicate.GreaterThan: ">",
			predicate.GreaterEq:   ">=",
			predicate.LessThan:    "<",
			predicate.LessEq:      "<=",
		}[c.Lookup]
		clause = fmt.Sprintf("%s %s %s", namePH, op, valuePH)

	case predicate.StartsWith:
		if err := e.bind(valuePH, c.Value); err != nil {
			return "", err
		}
		clause = fmt.Sprintf("begins_with(%s, %s)", namePH, valuePH)

	case predicate.Contains:
		if err := e.bind(valuePH, c.Value); err != nil {
			return "", err
		}
		clause = fmt.Sprintf("contains(%s, %s)", namePH, valuePH)

	case predicate.In:
		placeholders, err := e.bindList(valuePH, c.Value)
		if err != nil {
			return "", err
		}
		clause = fmt.Sprintf("%s IN (%s)", namePH, strings.Join(placeholders, ", "))

	case predicate.Range:
		placeholders, err := e.bindList(valuePH, c.Value)
		if err != nil {
			return "", err
		}
		if len(placeholders) != 2 {
			return "", errors.NewValidationError(c.Field, "range lookup expects a two-element slice")
		}
		clause = fmt.Sprintf("%s BETWEEN %s AND %s", namePH, placeholders[0], placeholders[1])

	case predicate.IsNull:
		want, ok := c.Value.(bool)
		if !ok {
			return "", errors.NewValidationError(c.Field, "isnull expects a bool value")
		}
		if want {
			clause = fmt.Sprintf("attribute_not_exists(%s)", namePH)
		} else {
			clause = fmt.Sprintf("attribute_exists(%s)", namePH)
		}

	default:
		return "", errors.NewUnsupportedLookupError(string(c.Lookup), "dynamodb filter expression")
	}

	if c.Negated {
		clause = "NOT (" + clause + ")"
	}
	return clause, nil
}

func (e *filterExpression) bind(placeholder string, value any) error {
	av, err := attributevalue.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal filter value: %w", err)
	}
	e.values[placeholder] = av
	return nil
}

// bindList marshals each element of a slice value under indexed placeholders.
func (e *filterExpression) bindList(placeholder string, value any) ([]string, error) {
	av, err := attributevalue.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal filter values: %w", err)
	}
	list, ok := av.(*types.AttributeValueMemberL)
	if !ok {
		return nil, fmt.Errorf("expected a slice filter value, got %T", value)
	}
	placeholders := make([]string, 0, len(list.Value))
	for j, item := range list.Value {
		ph := fmt.Sprintf("%s_%d", placeholder, j)
		e.values[ph] = item
		placeholders = append(placeholders, ph)
	}
	return placeholders, nil
}
