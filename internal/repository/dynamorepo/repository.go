// Package dynamorepo persiste espaços e itens no DynamoDB (STORAGE_DRIVER=dynamodb).
package dynamorepo

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"

	"easyinventory/internal/domain"
	"easyinventory/internal/errors"
	"easyinventory/internal/pkg/awsclient"
	"easyinventory/internal/pkg/logger"
)

// Store implementa domain.SpaceRepository, domain.ItemRepository e domain.Pinger.
type Store struct {
	client      awsclient.DynamoDBAPI
	spacesTable string
	itemsTable  string
	timeout     time.Duration
	nowFunc     func() time.Time
	logger      logger.Logger
}

// NewStore cria o Store sobre as tabelas informadas.
func NewStore(client awsclient.DynamoDBAPI, spacesTable, itemsTable string, timeout time.Duration, logger logger.Logger) *Store {
	return &Store{
		client:      client,
		spacesTable: spacesTable,
		itemsTable:  itemsTable,
		timeout:     timeout,
		nowFunc:     func() time.Time { return time.Now().UTC() },
		logger:      logger,
	}
}

// isConditionFailure reconhece a falha de ConditionExpression, tanto tipada
// quanto como smithy.APIError genérico (caso do DynamoDB Local).
func isConditionFailure(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	if stderrors.As(err, &ccf) {
		return true
	}
	var apiErr smithy.APIError
	return stderrors.As(err, &apiErr) && apiErr.ErrorCode() == "ConditionalCheckFailedException"
}

// Ping verifica se a tabela de espaços está acessível.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.DescribeTable(ctx, &dyn.DescribeTableInput{TableName: &s.spacesTable})
	if err != nil {
		return fmt.Errorf("describe table %s: %w", s.spacesTable, err)
	}
	return nil
}

// --- Espaços ---

// CreateSpace grava um novo espaço com ID e timestamps gerados aqui.
func (s *Store) CreateSpace(ctx context.Context, space domain.Space) (domain.Space, error) {
	s.logger.Debug("Iniciando CreateSpace no DynamoDB.", map[string]interface{}{"name": space.Name})

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	space.ID = uuid.New().String()
	space.CreatedAt = s.nowFunc()
	space.UpdatedAt = space.CreatedAt

	item, err := attributevalue.MarshalMap(toSpaceRecord(space))
	if err != nil {
		return domain.Space{}, errors.NewInternalError("Falha ao serializar espaço.", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.spacesTable,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(id)"),
	})
	if err != nil {
		s.logger.Error("Falha ao inserir espaço no DynamoDB.", err)
		return domain.Space{}, errors.NewDBError("Falha ao criar espaço", err)
	}

	s.logger.Info("Espaço criado com sucesso.", map[string]interface{}{"id": space.ID, "name": space.Name, "driver": "dynamodb"})
	return toSpaceRecord(space).toDomain(), nil
}

// GetSpaceByID busca um espaço pela chave primária.
func (s *Store) GetSpaceByID(ctx context.Context, id string) (domain.Space, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{TableName: &s.spacesTable, Key: idKey(id)})
	if err != nil {
		s.logger.Error("Falha ao buscar espaço no DynamoDB.", err)
		return domain.Space{}, errors.NewDBError("Falha ao buscar espaço", err)
	}
	if len(out.Item) == 0 {
		return domain.Space{}, errors.NewNotFoundError(fmt.Sprintf("Espaço com ID %s não encontrado.", id))
	}

	var rec spaceRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return domain.Space{}, errors.NewInternalError("Falha ao desserializar espaço.", err)
	}
	return rec.toDomain(), nil
}

// GetAllSpaces percorre a tabela inteira (Scan paginado) e ordena por created_at desc.
func (s *Store) GetAllSpaces(ctx context.Context) ([]domain.Space, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var records []spaceRecord
	input := &dyn.ScanInput{TableName: &s.spacesTable}
	for {
		out, err := s.client.Scan(ctx, input)
		if err != nil {
			s.logger.Error("Falha ao executar Scan de espaços.", err)
			return nil, errors.NewDBError("Falha ao buscar todos os espaços", err)
		}

		var page []spaceRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, errors.NewInternalError("Falha ao desserializar espaços.", err)
		}
		records = append(records, page...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].CreatedAt > records[j].CreatedAt })

	spaces := make([]domain.Space, 0, len(records))
	for _, rec := range records {
		spaces = append(spaces, rec.toDomain())
	}

	s.logger.Info("GetAllSpaces concluído com sucesso.", map[string]interface{}{"total_spaces": len(spaces), "driver": "dynamodb"})
	return spaces, nil
}

// UpdateSpace regrava os campos editáveis; falha com NotFound se o ID não existir.
func (s *Store) UpdateSpace(ctx context.Context, space domain.Space) (domain.Space, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	space.UpdatedAt = s.nowFunc()
	expr, err := buildUpdate(toSpaceRecord(space), "created_at")
	if err != nil {
		return domain.Space{}, errors.NewInternalError("Falha ao montar atualização de espaço.", err)
	}

	out, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:                 &s.spacesTable,
		Key:                       idKey(space.ID),
		UpdateExpression:          &expr.Expression,
		ExpressionAttributeNames:  expr.Names,
		ExpressionAttributeValues: expr.Values,
		ConditionExpression:       awsString("attribute_exists(id)"),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if isConditionFailure(err) {
		return domain.Space{}, errors.NewNotFoundError(fmt.Sprintf("Espaço com ID %s não encontrado para atualização.", space.ID))
	}
	if err != nil {
		s.logger.Error("Falha ao atualizar espaço no DynamoDB.", err)
		return domain.Space{}, errors.NewDBError("Falha ao atualizar espaço", err)
	}

	var rec spaceRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return domain.Space{}, errors.NewInternalError("Falha ao desserializar espaço.", err)
	}

	s.logger.Info("Espaço atualizado com sucesso.", map[string]interface{}{"id": rec.ID, "driver": "dynamodb"})
	return rec.toDomain(), nil
}

// DeleteSpace remove o espaço; falha com NotFound se o ID não existir.
func (s *Store) DeleteSpace(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName:           &s.spacesTable,
		Key:                 idKey(id),
		ConditionExpression: awsString("attribute_exists(id)"),
	})
	if isConditionFailure(err) {
		return errors.NewNotFoundError(fmt.Sprintf("Espaço com ID %s não encontrado para exclusão.", id))
	}
	if err != nil {
		s.logger.Error("Falha ao deletar espaço no DynamoDB.", err)
		return errors.NewDBError("Falha ao deletar espaço", err)
	}

	s.logger.Info("Espaço deletado com sucesso.", map[string]interface{}{"id": id, "driver": "dynamodb"})
	return nil
}

// --- Itens ---

// CreateItem grava um novo item com ID e timestamps gerados aqui.
func (s *Store) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	s.logger.Debug("Iniciando CreateItem no DynamoDB.", map[string]interface{}{"name": item.Name, "space_id": item.SpaceID})

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	item.ID = uuid.New().String()
	item.CreatedAt = s.nowFunc()
	item.UpdatedAt = item.CreatedAt

	av, err := attributevalue.MarshalMap(toItemRecord(item))
	if err != nil {
		return domain.Item{}, errors.NewInternalError("Falha ao serializar item.", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.itemsTable,
		Item:                av,
		ConditionExpression: awsString("attribute_not_exists(id)"),
	})
	if err != nil {
		s.logger.Error("Falha ao inserir item no DynamoDB.", err)
		return domain.Item{}, errors.NewDBError("Falha ao criar item", err)
	}

	s.logger.Info("Item criado com sucesso.", map[string]interface{}{"id": item.ID, "name": item.Name, "driver": "dynamodb"})
	return toItemRecord(item).toDomain(), nil
}

// GetItemByID busca um item pela chave primária.
func (s *Store) GetItemByID(ctx context.Context, id string) (domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{TableName: &s.itemsTable, Key: idKey(id)})
	if err != nil {
		s.logger.Error("Falha ao buscar item no DynamoDB.", err)
		return domain.Item{}, errors.NewDBError("Falha ao buscar item", err)
	}
	if len(out.Item) == 0 {
		return domain.Item{}, errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado.", id))
	}

	var rec itemRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return domain.Item{}, errors.NewInternalError("Falha ao desserializar item.", err)
	}
	return rec.toDomain(), nil
}

// GetItemsBySpace consulta o GSI do espaço em ordem decrescente de created_at.
func (s *Store) GetItemsBySpace(ctx context.Context, spaceID string) ([]domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.queryBySpace(ctx, spaceID)
	if err != nil {
		s.logger.Error("Falha ao consultar itens do espaço no DynamoDB.", err)
		return nil, errors.NewDBError("Falha ao buscar itens do espaço", err)
	}

	items := make([]domain.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.toDomain())
	}
	return items, nil
}

func (s *Store) queryBySpace(ctx context.Context, spaceID string) ([]itemRecord, error) {
	var records []itemRecord
	input := &dyn.QueryInput{
		TableName:              &s.itemsTable,
		IndexName:              awsString(SpaceIndex),
		KeyConditionExpression: awsString("space_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: spaceID},
		},
		ScanIndexForward: new(bool), // false: mais recentes primeiro
	}
	for {
		out, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, err
		}

		var page []itemRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
		records = append(records, page...)

		if len(out.LastEvaluatedKey) == 0 {
			return records, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// UpdateItem regrava os campos editáveis; falha com NotFound se o ID não existir.
func (s *Store) UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	item.UpdatedAt = s.nowFunc()
	expr, err := buildUpdate(toItemRecord(item), "created_at")
	if err != nil {
		return domain.Item{}, errors.NewInternalError("Falha ao montar atualização de item.", err)
	}

	return s.applyItemUpdate(ctx, item.ID, expr)
}

// UpdateItemQuantity altera somente quantity (e updated_at).
func (s *Store) UpdateItemQuantity(ctx context.Context, id string, quantity int) (domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	expr := updateExpression{
		Expression: "SET #q = :q, #u = :u",
		Names:      map[string]string{"#q": "quantity", "#u": "updated_at"},
		Values: map[string]types.AttributeValue{
			":q": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", quantity)},
			":u": &types.AttributeValueMemberS{Value: formatTime(s.nowFunc())},
		},
	}
	return s.applyItemUpdate(ctx, id, expr)
}

func (s *Store) applyItemUpdate(ctx context.Context, id string, expr updateExpression) (domain.Item, error) {
	out, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:                 &s.itemsTable,
		Key:                       idKey(id),
		UpdateExpression:          &expr.Expression,
		ExpressionAttributeNames:  expr.Names,
		ExpressionAttributeValues: expr.Values,
		ConditionExpression:       awsString("attribute_exists(id)"),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if isConditionFailure(err) {
		return domain.Item{}, errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado para atualização.", id))
	}
	if err != nil {
		s.logger.Error("Falha ao atualizar item no DynamoDB.", err)
		return domain.Item{}, errors.NewDBError("Falha ao atualizar item", err)
	}

	var rec itemRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return domain.Item{}, errors.NewInternalError("Falha ao desserializar item.", err)
	}

	s.logger.Info("Item atualizado com sucesso.", map[string]interface{}{"id": id, "driver": "dynamodb"})
	return rec.toDomain(), nil
}

// DeleteItem remove o item; falha com NotFound se o ID não existir.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName:           &s.itemsTable,
		Key:                 idKey(id),
		ConditionExpression: awsString("attribute_exists(id)"),
	})
	if isConditionFailure(err) {
		return errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado para exclusão.", id))
	}
	if err != nil {
		s.logger.Error("Falha ao deletar item no DynamoDB.", err)
		return errors.NewDBError("Falha ao deletar item", err)
	}
	return nil
}

// DeleteItemsBySpace remove, um a um, os itens encontrados no GSI do espaço.
func (s *Store) DeleteItemsBySpace(ctx context.Context, spaceID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	records, err := s.queryBySpace(ctx, spaceID)
	if err != nil {
		s.logger.Error("Falha ao consultar itens do espaço para exclusão.", err)
		return 0, errors.NewDBError("Falha ao deletar itens do espaço", err)
	}

	var removed int64
	for _, rec := range records {
		_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{TableName: &s.itemsTable, Key: idKey(rec.ID)})
		if err != nil {
			s.logger.Error("Falha ao deletar item do espaço.", err)
			return removed, errors.NewDBError("Falha ao deletar itens do espaço", err)
		}
		removed++
	}

	s.logger.Info("Itens do espaço removidos.", map[string]interface{}{"space_id": spaceID, "removed": removed, "driver": "dynamodb"})
	return removed, nil
}
