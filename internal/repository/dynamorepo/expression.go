package dynamorepo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// updateExpression monta "SET #f0 = :v0, #f1 = :v1" a partir dos campos de um
// registro já serializado. A chave primária nunca entra no SET.
type updateExpression struct {
	Expression string
	Names      map[string]string
	Values     map[string]types.AttributeValue
}

func buildUpdate(record interface{}, skip ...string) (updateExpression, error) {
	av, err := attributevalue.MarshalMap(record)
	if err != nil {
		return updateExpression{}, fmt.Errorf("marshal record: %w", err)
	}

	skipped := map[string]bool{"id": true}
	for _, k := range skip {
		skipped[k] = true
	}

	keys := make([]string, 0, len(av))
	for k := range av {
		if !skipped[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	expr := updateExpression{
		Names:  make(map[string]string, len(keys)),
		Values: make(map[string]types.AttributeValue, len(keys)),
	}
	parts := make([]string, 0, len(keys))
	for i, k := range keys {
		name, value := fmt.Sprintf("#f%d", i), fmt.Sprintf(":v%d", i)
		expr.Names[name] = k
		expr.Values[value] = av[k]
		parts = append(parts, name+" = "+value)
	}
	expr.Expression = "SET " + strings.Join(parts, ", ")
	return expr, nil
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func awsString(s string) *string { return &s }
