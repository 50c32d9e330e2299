package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type productItem struct {
	ID             string `dynamodbav:"id"`
	Title          string `dynamodbav:"title"`
	TitleLower     string `dynamodbav:"title_lower"`
	Slug           string `dynamodbav:"slug"`
	SKU            string `dynamodbav:"sku"`
	Description    string `dynamodbav:"description,omitempty"`
	Price          string `dynamodbav:"price"`
	InventoryCount int    `dynamodbav:"inventory_count"`
	Status         string `dynamodbav:"status"`
	ImageURL       string `dynamodbav:"image_url,omitempty"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

// ProductDynamoRepository reads the catalog and applies conditional
// inventory decrements.
//
// Table requirements:
//   - PK: id (string)
type ProductDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IProductRepository = (*ProductDynamoRepository)(nil)

func NewProductDynamoRepository(ddb *dynamodb.Client, tableName string) *ProductDynamoRepository {
	return &ProductDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ProductDynamoRepository) GetByID(ctx context.Context, id string) (entities.Product, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            map[string]types.AttributeValue{"id": strAttr(id)},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Product{}, err
	}
	if len(out.Item) == 0 {
		return entities.Product{}, nil
	}
	var it productItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Product{}, err
	}
	return fromProductItem(it), nil
}

// ListActive scans active products and pages in memory. The catalog is small
// enough for this; a status/title GSI is the next step if it grows.
func (r *ProductDynamoRepository) ListActive(ctx context.Context, q interfaces.ProductQuery) ([]entities.Product, int, error) {
	filter := "#status = :active"
	names := map[string]string{"#status": "status"}
	values := map[string]types.AttributeValue{":active": strAttr(string(entities.ProductStatusActive))}
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		filter += " AND contains(#title_lower, :q)"
		names["#title_lower"] = "title_lower"
		values[":q"] = strAttr(s)
	}

	var all []entities.Product
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          aws.String(filter),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, 0, err
		}
		var items []productItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, 0, err
		}
		for _, it := range items {
			all = append(all, fromProductItem(it))
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Title == all[j].Title {
			return all[i].ID < all[j].ID
		}
		return all[i].Title < all[j].Title
	})
	return pageProducts(all, q.Offset, q.Limit), len(all), nil
}

func (r *ProductDynamoRepository) CompareAndDecrement(ctx context.Context, productID string, expected, quantity int) (entities.DecrementOutcome, error) {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 map[string]types.AttributeValue{"id": strAttr(productID)},
		UpdateExpression:    aws.String("SET #inventory_count = :next, #updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(#id) AND #inventory_count = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":              "id",
			"#inventory_count": "inventory_count",
			"#updated_at":      "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.Itoa(expected)},
			":next":     &types.AttributeValueMemberN{Value: strconv.Itoa(expected - quantity)},
			":now":      strAttr(formatTime(nowUTC())),
		},
	})
	if err != nil {
		if _, ok := isConditionalCheckFailed(err); ok {
			return entities.DecrementLostRace, nil
		}
		return entities.DecrementLostRace, err
	}
	return entities.DecrementApplied, nil
}

func pageProducts(all []entities.Product, offset, limit int) []entities.Product {
	if offset >= len(all) {
		return []entities.Product{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}

func toProductItem(p entities.Product) productItem {
	return productItem{
		ID:             p.ID,
		Title:          p.Title,
		TitleLower:     strings.ToLower(p.Title),
		Slug:           p.Slug,
		SKU:            p.SKU,
		Description:    p.Description,
		Price:          p.Price.String(),
		InventoryCount: p.InventoryCount,
		Status:         string(p.Status),
		ImageURL:       p.ImageURL,
		CreatedAt:      formatTime(p.CreatedAt),
		UpdatedAt:      formatTime(p.UpdatedAt),
	}
}

func fromProductItem(it productItem) entities.Product {
	return entities.Product{
		ID:             it.ID,
		Title:          it.Title,
		Slug:           it.Slug,
		SKU:            it.SKU,
		Description:    it.Description,
		Price:          parseDecimal(it.Price),
		InventoryCount: it.InventoryCount,
		Status:         entities.ProductStatus(it.Status),
		ImageURL:       it.ImageURL,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
}

// Put writes a catalog entry as is. Used by the migrate command to seed data.
func (r *ProductDynamoRepository) Put(ctx context.Context, p entities.Product) error {
	av, err := attributevalue.MarshalMap(toProductItem(p))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}
