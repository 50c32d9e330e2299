package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const tableActiveTimeout = 2 * time.Minute

// DynamoTableNames are the physical table names created by EnsureDynamoTables.
type DynamoTableNames struct {
	Products    string
	Orders      string
	OrderItems  string
	Customers   string
	Subscribers string
}

type tableAPI interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoTableDefinitions returns the key schema and indexes the repositories
// rely on. All tables use on-demand billing.
func DynamoTableDefinitions(names DynamoTableNames) []*dynamodb.CreateTableInput {
	str := func(name string) types.AttributeDefinition {
		return types.AttributeDefinition{AttributeName: aws.String(name), AttributeType: types.ScalarAttributeTypeS}
	}
	hash := func(name string) types.KeySchemaElement {
		return types.KeySchemaElement{AttributeName: aws.String(name), KeyType: types.KeyTypeHash}
	}
	gsi := func(index, attr string) types.GlobalSecondaryIndex {
		return types.GlobalSecondaryIndex{
			IndexName:  aws.String(index),
			KeySchema:  []types.KeySchemaElement{hash(attr)},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}
	}

	return []*dynamodb.CreateTableInput{
		{
			TableName:            aws.String(names.Products),
			AttributeDefinitions: []types.AttributeDefinition{str("id")},
			KeySchema:            []types.KeySchemaElement{hash("id")},
			BillingMode:          types.BillingModePayPerRequest,
		},
		{
			TableName:              aws.String(names.Orders),
			AttributeDefinitions:   []types.AttributeDefinition{str("id"), str("provider_order_id")},
			KeySchema:              []types.KeySchemaElement{hash("id")},
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{gsi(OrdersProviderOrderIDIndex, "provider_order_id")},
			BillingMode:            types.BillingModePayPerRequest,
		},
		{
			TableName:            aws.String(names.OrderItems),
			AttributeDefinitions: []types.AttributeDefinition{str("order_id"), str("id")},
			KeySchema: []types.KeySchemaElement{
				hash("order_id"),
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeRange},
			},
			BillingMode: types.BillingModePayPerRequest,
		},
		{
			TableName:              aws.String(names.Customers),
			AttributeDefinitions:   []types.AttributeDefinition{str("id"), str("email")},
			KeySchema:              []types.KeySchemaElement{hash("id")},
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{gsi(CustomersEmailIndex, "email")},
			BillingMode:            types.BillingModePayPerRequest,
		},
		{
			TableName:            aws.String(names.Subscribers),
			AttributeDefinitions: []types.AttributeDefinition{str("email")},
			KeySchema:            []types.KeySchemaElement{hash("email")},
			BillingMode:          types.BillingModePayPerRequest,
		},
	}
}

// EnsureDynamoTables creates missing tables and waits until each is active.
// Existing tables are left untouched.
func EnsureDynamoTables(ctx context.Context, ddb tableAPI, names DynamoTableNames) error {
	waiter := dynamodb.NewTableExistsWaiter(ddb, func(o *dynamodb.TableExistsWaiterOptions) {
		o.MinDelay = 500 * time.Millisecond
		o.MaxDelay = 5 * time.Second
	})

	for _, def := range DynamoTableDefinitions(names) {
		name := aws.ToString(def.TableName)
		_, err := ddb.CreateTable(ctx, def)
		var inUse *types.ResourceInUseException
		switch {
		case err == nil:
			log.Printf("[migrate][dynamodb] created table=%s", name)
		case errors.As(err, &inUse):
			log.Printf("[migrate][dynamodb] table exists table=%s", name)
		default:
			return fmt.Errorf("create table %s: %w", name, err)
		}

		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: def.TableName}, tableActiveTimeout); err != nil {
			return fmt.Errorf("wait for table %s: %w", name, err)
		}
	}
	return nil
}
