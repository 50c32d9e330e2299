package repository

import (
	"context"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type subscriberItem struct {
	Email        string `dynamodbav:"email"`
	Source       string `dynamodbav:"source"`
	SubscribedAt string `dynamodbav:"subscribed_at"`
}

// SubscriberDynamoRepository stores newsletter subscriptions.
//
// Table requirements:
//   - PK: email (string)
type SubscriberDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.ISubscriberRepository = (*SubscriberDynamoRepository)(nil)

func NewSubscriberDynamoRepository(ddb *dynamodb.Client, tableName string) *SubscriberDynamoRepository {
	return &SubscriberDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *SubscriberDynamoRepository) Upsert(ctx context.Context, s entities.Subscriber) (bool, error) {
	av, err := attributevalue.MarshalMap(subscriberItem{
		Email:        s.Email,
		Source:       s.Source,
		SubscribedAt: formatTime(s.SubscribedAt),
	})
	if err != nil {
		return false, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#email)"),
		ExpressionAttributeNames: map[string]string{"#email": "email"},
	})
	if err != nil {
		if _, ok := isConditionalCheckFailed(err); ok {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
