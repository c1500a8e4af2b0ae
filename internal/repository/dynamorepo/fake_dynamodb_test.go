package dynamorepo

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type row = map[string]types.AttributeValue

// fakeDynamo é um DynamoDB mínimo em memória para os testes do Store.
// Entende apenas as expressões que o Store emite.
type fakeDynamo struct {
	mu       sync.Mutex
	tables   map[string]map[string]row
	pageSize int
	failWith error
}

func newFakeDynamo(tables ...string) *fakeDynamo {
	f := &fakeDynamo{tables: map[string]map[string]row{}, pageSize: 2}
	for _, t := range tables {
		f.tables[t] = map[string]row{}
	}
	return f
}

func str(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func copyRow(r row) row {
	out := make(row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func (f *fakeDynamo) table(name *string) (map[string]row, error) {
	t, ok := f.tables[*name]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: name}
	}
	return t, nil
}

func checkCondition(cond *string, exists bool) error {
	if cond == nil {
		return nil
	}
	switch *cond {
	case "attribute_not_exists(id)":
		if exists {
			return &types.ConditionalCheckFailedException{}
		}
	case "attribute_exists(id)":
		if !exists {
			return &types.ConditionalCheckFailedException{}
		}
	}
	return nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}
	id := str(params.Item["id"])
	_, exists := t[id]
	if err := checkCondition(params.ConditionExpression, exists); err != nil {
		return nil, err
	}
	t[id] = copyRow(params.Item)
	return &dyn.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}
	item, ok := t[str(params.Key["id"])]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: copyRow(item)}, nil
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}
	id := str(params.Key["id"])
	item, exists := t[id]
	if err := checkCondition(params.ConditionExpression, exists); err != nil {
		return nil, err
	}
	if !exists {
		item = copyRow(params.Key)
	}

	// "SET #a = :a, #b = :b"
	assignments := strings.TrimPrefix(*params.UpdateExpression, "SET ")
	for _, part := range strings.Split(assignments, ", ") {
		sides := strings.SplitN(part, " = ", 2)
		if len(sides) != 2 {
			return nil, errors.New("fake: unsupported update expression")
		}
		item[params.ExpressionAttributeNames[sides[0]]] = params.ExpressionAttributeValues[sides[1]]
	}
	t[id] = item

	return &dyn.UpdateItemOutput{Attributes: copyRow(item)}, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}
	id := str(params.Key["id"])
	_, exists := t[id]
	if err := checkCondition(params.ConditionExpression, exists); err != nil {
		return nil, err
	}
	delete(t, id)
	return &dyn.DeleteItemOutput{}, nil
}

// page devolve uma fatia de rows a partir da chave de início, com LastEvaluatedKey.
func (f *fakeDynamo) page(rows []row, start row) ([]row, row) {
	from := 0
	if start != nil {
		startID := str(start["id"])
		for i, r := range rows {
			if str(r["id"]) == startID {
				from = i + 1
				break
			}
		}
	}
	to := from + f.pageSize
	if to >= len(rows) {
		return rows[from:], nil
	}
	return rows[from:to], row{"id": rows[to-1]["id"]}
}

func (f *fakeDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}
	rows := make([]row, 0, len(t))
	for _, r := range t {
		rows = append(rows, copyRow(r))
	}
	sort.Slice(rows, func(i, j int) bool { return str(rows[i]["id"]) < str(rows[j]["id"]) })

	items, last := f.page(rows, params.ExclusiveStartKey)
	return &dyn.ScanOutput{Items: items, LastEvaluatedKey: last}, nil
}

func (f *fakeDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	t, err := f.table(params.TableName)
	if err != nil {
		return nil, err
	}
	if params.IndexName == nil || *params.IndexName != SpaceIndex {
		return nil, errors.New("fake: query only supported on the space index")
	}
	spaceID := str(params.ExpressionAttributeValues[":sid"])

	rows := make([]row, 0)
	for _, r := range t {
		if str(r["space_id"]) == spaceID {
			rows = append(rows, copyRow(r))
		}
	}
	forward := params.ScanIndexForward == nil || *params.ScanIndexForward
	sort.Slice(rows, func(i, j int) bool {
		a, b := str(rows[i]["created_at"]), str(rows[j]["created_at"])
		if forward {
			return a < b
		}
		return a > b
	})

	items, last := f.page(rows, params.ExclusiveStartKey)
	return &dyn.QueryOutput{Items: items, LastEvaluatedKey: last}, nil
}

func (f *fakeDynamo) DescribeTable(ctx context.Context, params *dyn.DescribeTableInput, optFns ...func(*dyn.Options)) (*dyn.DescribeTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	if _, err := f.table(params.TableName); err != nil {
		return nil, err
	}
	return &dyn.DescribeTableOutput{Table: &types.TableDescription{TableName: params.TableName}}, nil
}

func (f *fakeDynamo) CreateTable(ctx context.Context, params *dyn.CreateTableInput, optFns ...func(*dyn.Options)) (*dyn.CreateTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[*params.TableName] = map[string]row{}
	return &dyn.CreateTableOutput{}, nil
}
