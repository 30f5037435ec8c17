/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/querycache/errors"
	"github.com/suparena/querycache/registry"
)

// entityTypeAttr is injected on every persisted item and used by Select to
// restrict scans to records of type T in a single-table layout.
const entityTypeAttr = "EntityType"

// DynamodbDataStore implements datastore.DataStore[T] using AWS DynamoDB as
// the backing store.
type DynamodbDataStore[T any] struct {
	client    *sdk.Client
	tableName string
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// NewDynamoDBClient initializes a DynamoDB client using static AWS credentials.
func NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg), nil
}

// NewDynamodbDataStore constructs a new DynamodbDataStore for type T.
func NewDynamodbDataStore[T any](awsAccessKey, awsSecretKey, awsRegion, tableName string) (*DynamodbDataStore[T], error) {
	client, err := NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	return &DynamodbDataStore[T]{
		client:    client,
		tableName: tableName,
	}, nil
}

// GetOne retrieves a single record by its string key. The key is expanded
// through the type's registered key map to build the table key.
func (d *DynamodbDataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	keyMap, ok := registry.GetKeyMap[T]()
	if !ok {
		return nil, errors.ErrNoKeyMap
	}

	expanded := expandStringKey(keyMap, key)
	tableKey, err := buildKeyFromExpanded(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.tableName,
		Key:       tableKey,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, errors.NewNotFoundError(registry.TypeName[T](), key)
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Put stores the record, expanding the type's key map macros into partition
// and sort keys and stamping the EntityType attribute.
func (d *DynamodbDataStore[T]) Put(ctx context.Context, record T) error {
	keyMap, ok := registry.GetKeyMap[T]()
	if !ok {
		return errors.ErrNoKeyMap
	}

	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	expanded, err := expandMacros(keyMap, record)
	if err != nil {
		return err
	}
	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}
	av[entityTypeAttr] = &types.AttributeValueMemberS{Value: registry.TypeName[T]()}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Delete removes a record by its string key.
func (d *DynamodbDataStore[T]) Delete(ctx context.Context, key string) error {
	keyMap, ok := registry.GetKeyMap[T]()
	if !ok {
		return errors.ErrNoKeyMap
	}

	expanded := expandStringKey(keyMap, key)
	tableKey, err := buildKeyFromExpanded(expanded)
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &d.tableName,
		Key:       tableKey,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

// expandMacros renders each key template against the record's attribute
// values, e.g. "PLAYER#{ID}" with {ID: "7"} becomes "PLAYER#7".
func expandMacros(keyMap map[string]string, record any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record for key expansion: %w", err)
	}

	res := make(map[string]string, len(keyMap))
	for fieldName, template := range keyMap {
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			name := strings.Trim(macro, "{}")
			val, ok := av[name]
			if !ok {
				return ""
			}
			switch tv := val.(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				return ""
			}
		})
		res[fieldName] = expanded
	}
	return res, nil
}

// expandStringKey substitutes the raw key for every macro in the key map,
// assuming each template embeds a single macro.
func expandStringKey(keyMap map[string]string, key string) map[string]string {
	expanded := make(map[string]string, len(keyMap))
	for field, template := range keyMap {
		expanded[field] = macroPattern.ReplaceAllString(template, key)
	}
	return expanded
}

// buildKeyFromExpanded builds the table key from expanded PK/SK values.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded key map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}
