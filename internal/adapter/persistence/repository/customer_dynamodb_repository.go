package repository

import (
	"context"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const CustomersEmailIndex = "email-index"

type customerItem struct {
	ID        string `dynamodbav:"id"`
	Email     string `dynamodbav:"email"`
	FullName  string `dynamodbav:"full_name"`
	Role      string `dynamodbav:"role"`
	CreatedAt string `dynamodbav:"created_at"`
}

// CustomerDynamoRepository resolves customer profiles by email.
//
// Table requirements:
//   - PK: id (string)
//   - GSI email-index on email
type CustomerDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.ICustomerRepository = (*CustomerDynamoRepository)(nil)

func NewCustomerDynamoRepository(ddb *dynamodb.Client, tableName string) *CustomerDynamoRepository {
	return &CustomerDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *CustomerDynamoRepository) FindByEmail(ctx context.Context, email string) (entities.Customer, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(CustomersEmailIndex),
		KeyConditionExpression:    aws.String("email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":email": strAttr(email)},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return entities.Customer{}, err
	}
	if len(out.Items) == 0 {
		return entities.Customer{}, nil
	}
	var it customerItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Customer{}, err
	}
	return entities.Customer{
		ID:        it.ID,
		Email:     it.Email,
		FullName:  it.FullName,
		Role:      entities.Role(it.Role),
		CreatedAt: parseTime(it.CreatedAt),
	}, nil
}
