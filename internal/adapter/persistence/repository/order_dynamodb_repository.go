package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	OrdersProviderOrderIDIndex = "provider_order_id-index"
	orderNumberGuardPrefix     = "order_number#"
)

type addressItem struct {
	Name       string `dynamodbav:"name"`
	Line1      string `dynamodbav:"line1"`
	Line2      string `dynamodbav:"line2,omitempty"`
	City       string `dynamodbav:"city"`
	PostalCode string `dynamodbav:"postal_code"`
	Region     string `dynamodbav:"region,omitempty"`
	Country    string `dynamodbav:"country,omitempty"`
}

type orderItem struct {
	ID              string      `dynamodbav:"id"`
	OrderNumber     string      `dynamodbav:"order_number"`
	Email           string      `dynamodbav:"email"`
	Phone           string      `dynamodbav:"phone"`
	CustomerID      string      `dynamodbav:"customer_id,omitempty"`
	Status          string      `dynamodbav:"status"`
	PaymentStatus   string      `dynamodbav:"payment_status"`
	Subtotal        string      `dynamodbav:"subtotal"`
	ShippingCost    string      `dynamodbav:"shipping_cost"`
	Total           string      `dynamodbav:"total"`
	ShippingAddress addressItem `dynamodbav:"shipping_address"`
	BillingAddress  addressItem `dynamodbav:"billing_address"`
	Notes           string      `dynamodbav:"notes,omitempty"`
	ProviderOrderID string      `dynamodbav:"provider_order_id,omitempty"`
	CreatedAt       string      `dynamodbav:"created_at"`
	UpdatedAt       string      `dynamodbav:"updated_at"`
	PaidAt          string      `dynamodbav:"paid_at,omitempty"`
}

type orderLineItem struct {
	OrderID   string `dynamodbav:"order_id"`
	ID        string `dynamodbav:"id"`
	ProductID string `dynamodbav:"product_id"`
	VariantID string `dynamodbav:"variant_id,omitempty"`
	Title     string `dynamodbav:"title"`
	Price     string `dynamodbav:"price"`
	Quantity  int    `dynamodbav:"quantity"`
	Total     string `dynamodbav:"total"`
	ImageURL  string `dynamodbav:"image_url,omitempty"`
}

// OrderDynamoRepository persists orders and their line items in DynamoDB.
//
// Table requirements:
//   - orders: PK id (string), GSI provider_order_id-index on provider_order_id
//   - order items: PK order_id (string), SK id (string)
//
// Order numbers are kept unique with a guard item "order_number#<number>" in
// the orders table, written in the same transaction as the order.
type OrderDynamoRepository struct {
	ddb            dynamoAPI
	tableName      string
	itemsTableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client, tableName, itemsTableName string) *OrderDynamoRepository {
	return &OrderDynamoRepository{ddb: ddb, tableName: tableName, itemsTableName: itemsTableName}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Put: &types.Put{
				TableName: aws.String(r.tableName),
				Item: map[string]types.AttributeValue{
					"id":       strAttr(orderNumberGuardPrefix + o.OrderNumber),
					"order_id": strAttr(o.ID),
				},
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) > 1 &&
			aws.ToString(tce.CancellationReasons[1].Code) == "ConditionalCheckFailed" {
			return entities.Order{}, interfaces.ErrDuplicateOrderNumber
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) CreateItems(ctx context.Context, items []entities.OrderItem) error {
	reqs := make([]types.WriteRequest, 0, len(items))
	for _, it := range items {
		av, err := attributevalue.MarshalMap(toOrderLineItem(it))
		if err != nil {
			return err
		}
		reqs = append(reqs, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
	}
	return batchWrite(ctx, r.ddb, r.itemsTableName, reqs)
}

// Delete removes the order, its order-number guard and any line items.
func (r *OrderDynamoRepository) Delete(ctx context.Context, id string) error {
	o, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o.ID == "" {
		return nil
	}

	items, err := r.ListItems(ctx, id)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		reqs := make([]types.WriteRequest, 0, len(items))
		for _, it := range items {
			reqs = append(reqs, types.WriteRequest{DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{"order_id": strAttr(id), "id": strAttr(it.ID)},
			}})
		}
		if err := batchWrite(ctx, r.ddb, r.itemsTableName, reqs); err != nil {
			return err
		}
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Delete: &types.Delete{
				TableName: aws.String(r.tableName),
				Key:       map[string]types.AttributeValue{"id": strAttr(id)},
			}},
			{Delete: &types.Delete{
				TableName: aws.String(r.tableName),
				Key:       map[string]types.AttributeValue{"id": strAttr(orderNumberGuardPrefix + o.OrderNumber)},
			}},
		},
	})
	return err
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            map[string]types.AttributeValue{"id": strAttr(id)},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	return decodeOrder(out.Item)
}

func (r *OrderDynamoRepository) GetByProviderOrderID(ctx context.Context, providerOrderID string) (entities.Order, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(OrdersProviderOrderIDIndex),
		KeyConditionExpression:    aws.String("provider_order_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":pid": strAttr(providerOrderID)},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Items) == 0 {
		return entities.Order{}, nil
	}
	return decodeOrder(out.Items[0])
}

func (r *OrderDynamoRepository) ListItems(ctx context.Context, orderID string) ([]entities.OrderItem, error) {
	var items []entities.OrderItem
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:                 aws.String(r.itemsTableName),
		KeyConditionExpression:    aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":oid": strAttr(orderID)},
		ConsistentRead:            aws.Bool(true),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var rows []orderLineItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &rows); err != nil {
			return nil, err
		}
		for _, row := range rows {
			items = append(items, fromOrderLineItem(row))
		}
	}
	return items, nil
}

// MarkPaid keeps the first paid_at when the order is already paid.
func (r *OrderDynamoRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (entities.Order, error) {
	return r.update(ctx, id, updateSpec{
		expr: "SET #payment_status = :paid, #status = :confirmed, #paid_at = if_not_exists(#paid_at, :paid_at), #updated_at = :now",
		names: map[string]string{
			"#payment_status": "payment_status",
			"#status":         "status",
			"#paid_at":        "paid_at",
		},
		values: map[string]types.AttributeValue{
			":paid":      strAttr(string(entities.PaymentStatusPaid)),
			":confirmed": strAttr(string(entities.OrderStatusConfirmed)),
			":paid_at":   strAttr(formatTime(paidAt)),
		},
	})
}

func (r *OrderDynamoRepository) MarkPaymentFailed(ctx context.Context, id string) (entities.Order, error) {
	return r.update(ctx, id, updateSpec{
		expr:      "SET #payment_status = :failed, #updated_at = :now",
		condition: "#payment_status <> :paid",
		names:     map[string]string{"#payment_status": "payment_status"},
		values: map[string]types.AttributeValue{
			":failed": strAttr(string(entities.PaymentStatusFailed)),
			":paid":   strAttr(string(entities.PaymentStatusPaid)),
		},
		onConditionFailed: interfaces.ErrOrderAlreadyPaid,
	})
}

func (r *OrderDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error) {
	return r.update(ctx, id, updateSpec{
		expr:   "SET #status = :status, #updated_at = :now",
		names:  map[string]string{"#status": "status"},
		values: map[string]types.AttributeValue{":status": strAttr(string(status))},
	})
}

func (r *OrderDynamoRepository) SetProviderOrderID(ctx context.Context, id, providerOrderID string) error {
	_, err := r.update(ctx, id, updateSpec{
		expr:   "SET #provider_order_id = :pid, #updated_at = :now",
		names:  map[string]string{"#provider_order_id": "provider_order_id"},
		values: map[string]types.AttributeValue{":pid": strAttr(providerOrderID)},
	})
	return err
}

type updateSpec struct {
	expr      string
	condition string
	names     map[string]string
	values    map[string]types.AttributeValue
	// returned when condition fails on an existing order
	onConditionFailed error
}

func (r *OrderDynamoRepository) update(ctx context.Context, id string, spec updateSpec) (entities.Order, error) {
	cond := "attribute_exists(#id)"
	if spec.condition != "" {
		cond += " AND " + spec.condition
	}
	values := map[string]types.AttributeValue{":now": strAttr(formatTime(nowUTC()))}
	for k, v := range spec.values {
		values[k] = v
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                           aws.String(r.tableName),
		Key:                                 map[string]types.AttributeValue{"id": strAttr(id)},
		ConditionExpression:                 aws.String(cond),
		UpdateExpression:                    aws.String(spec.expr),
		ExpressionAttributeValues:           values,
		ExpressionAttributeNames:            mergeNames(spec.names, map[string]string{"#id": "id", "#updated_at": "updated_at"}),
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if cfe, ok := isConditionalCheckFailed(err); ok {
			if len(cfe.Item) > 0 && spec.onConditionFailed != nil {
				return entities.Order{}, spec.onConditionFailed
			}
			return entities.Order{}, nil
		}
		log.Printf("[order][repository] update failed order_id=%s err=%v", id, err)
		return entities.Order{}, err
	}
	return decodeOrder(out.Attributes)
}

func decodeOrder(av map[string]types.AttributeValue) (entities.Order, error) {
	if len(av) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Order{}, err
	}
	// guard items share the table but carry no order number
	if it.OrderNumber == "" {
		return entities.Order{}, nil
	}
	return fromOrderItem(it), nil
}

func toOrderItem(o entities.Order) orderItem {
	it := orderItem{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		Email:           o.Email,
		Phone:           o.Phone,
		CustomerID:      o.CustomerID,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		Subtotal:        o.Subtotal.String(),
		ShippingCost:    o.ShippingCost.String(),
		Total:           o.Total.String(),
		ShippingAddress: addressItem(o.ShippingAddress),
		BillingAddress:  addressItem(o.BillingAddress),
		Notes:           o.Notes,
		ProviderOrderID: o.ProviderOrderID,
		CreatedAt:       formatTime(o.CreatedAt),
		UpdatedAt:       formatTime(o.UpdatedAt),
	}
	if o.PaidAt != nil {
		it.PaidAt = formatTime(*o.PaidAt)
	}
	return it
}

func fromOrderItem(it orderItem) entities.Order {
	o := entities.Order{
		ID:              it.ID,
		OrderNumber:     it.OrderNumber,
		Email:           it.Email,
		Phone:           it.Phone,
		CustomerID:      it.CustomerID,
		Status:          entities.OrderStatus(it.Status),
		PaymentStatus:   entities.PaymentStatus(it.PaymentStatus),
		Subtotal:        parseDecimal(it.Subtotal),
		ShippingCost:    parseDecimal(it.ShippingCost),
		Total:           parseDecimal(it.Total),
		ShippingAddress: entities.Address(it.ShippingAddress),
		BillingAddress:  entities.Address(it.BillingAddress),
		Notes:           it.Notes,
		ProviderOrderID: it.ProviderOrderID,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
	if it.PaidAt != "" {
		t := parseTime(it.PaidAt)
		o.PaidAt = &t
	}
	return o
}

func toOrderLineItem(it entities.OrderItem) orderLineItem {
	return orderLineItem{
		OrderID:   it.OrderID,
		ID:        it.ID,
		ProductID: it.ProductID,
		VariantID: it.VariantID,
		Title:     it.Title,
		Price:     it.Price.String(),
		Quantity:  it.Quantity,
		Total:     it.Total.String(),
		ImageURL:  it.ImageURL,
	}
}

func fromOrderLineItem(it orderLineItem) entities.OrderItem {
	return entities.OrderItem{
		ID:        it.ID,
		OrderID:   it.OrderID,
		ProductID: it.ProductID,
		VariantID: it.VariantID,
		Title:     it.Title,
		Price:     parseDecimal(it.Price),
		Quantity:  it.Quantity,
		Total:     parseDecimal(it.Total),
		ImageURL:  it.ImageURL,
	}
}
