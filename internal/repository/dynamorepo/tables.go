package dynamorepo

import (
	"context"
	stderrors "errors"
	"fmt"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// EnsureTables cria as tabelas (e o GSI de itens por espaço) quando ainda não
// existem. Usado com AUTO_MIGRATE contra DynamoDB Local.
func (s *Store) EnsureTables(ctx context.Context) error {
	if err := s.ensureTable(ctx, s.spacesTable, nil); err != nil {
		return err
	}

	gsi := []types.GlobalSecondaryIndex{{
		IndexName: awsString(SpaceIndex),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: awsString("space_id"), KeyType: types.KeyTypeHash},
			{AttributeName: awsString("created_at"), KeyType: types.KeyTypeRange},
		},
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}}
	return s.ensureTable(ctx, s.itemsTable, gsi)
}

func (s *Store) ensureTable(ctx context.Context, table string, gsi []types.GlobalSecondaryIndex) error {
	_, err := s.client.DescribeTable(ctx, &dyn.DescribeTableInput{TableName: &table})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !stderrors.As(err, &notFound) {
		return fmt.Errorf("describe table %s: %w", table, err)
	}

	attrs := []types.AttributeDefinition{
		{AttributeName: awsString("id"), AttributeType: types.ScalarAttributeTypeS},
	}
	if len(gsi) > 0 {
		attrs = append(attrs,
			types.AttributeDefinition{AttributeName: awsString("space_id"), AttributeType: types.ScalarAttributeTypeS},
			types.AttributeDefinition{AttributeName: awsString("created_at"), AttributeType: types.ScalarAttributeTypeS},
		)
	}

	_, err = s.client.CreateTable(ctx, &dyn.CreateTableInput{
		TableName:            &table,
		AttributeDefinitions: attrs,
		KeySchema: []types.KeySchemaElement{
			{AttributeName: awsString("id"), KeyType: types.KeyTypeHash},
		},
		GlobalSecondaryIndexes: gsi,
		BillingMode:            types.BillingModePayPerRequest,
	})
	if err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}

	s.logger.Info("Tabela DynamoDB criada.", map[string]interface{}{"table": table})
	return nil
}
