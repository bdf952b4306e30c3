// Package dynamo guarda en DynamoDB el proyecto EasyCalc en curso de cada usuario.
package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/domain/repository"
)

// API subconjunto del cliente DynamoDB usado por el store (permite fakes en tests).
type API interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// draftItem registro en la tabla. PK: user_id (string).
type draftItem struct {
	UserID    string `dynamodbav:"user_id"`
	CompanyID string `dynamodbav:"company_id"`
	Name      string `dynamodbav:"name"`
	Input     string `dynamodbav:"input"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// DraftStore implementa repository.DraftStore.
type DraftStore struct {
	ddb   API
	table string
}

var _ repository.DraftStore = (*DraftStore)(nil)

// NewClient crea el cliente DynamoDB; endpoint nil = AWS real.
func NewClient(cfg aws.Config, endpoint *string) *dynamodb.Client {
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != nil {
			o.BaseEndpoint = endpoint
		}
	})
}

// NewDraftStore crea el store sobre la tabla indicada.
func NewDraftStore(ddb API, table string) *DraftStore {
	return &DraftStore{ddb: ddb, table: table}
}

// Save reemplaza el borrador del usuario.
func (s *DraftStore) Save(ctx context.Context, d *entity.EstimateDraft) error {
	av, err := attributevalue.MarshalMap(draftItem{
		UserID:    d.UserID,
		CompanyID: d.CompanyID,
		Name:      d.Name,
		Input:     string(d.Input),
		UpdatedAt: d.UpdatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("dynamo: serializar borrador: %w", err)
	}
	if _, err := s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("dynamo: guardar borrador: %w", err)
	}
	return nil
}

// Get devuelve (nil, nil) si el usuario no tiene borrador.
func (s *DraftStore) Get(ctx context.Context, userID string) (*entity.EstimateDraft, error) {
	out, err := s.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            key(userID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamo: leer borrador: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var it draftItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("dynamo: decodificar borrador: %w", err)
	}
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return &entity.EstimateDraft{
		UserID:    it.UserID,
		CompanyID: it.CompanyID,
		Name:      it.Name,
		Input:     []byte(it.Input),
		UpdatedAt: updatedAt,
	}, nil
}

// Delete borra el borrador; no falla si no existe.
func (s *DraftStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       key(userID),
	}); err != nil {
		return fmt.Errorf("dynamo: borrar borrador: %w", err)
	}
	return nil
}

func key(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id": &types.AttributeValueMemberS{Value: userID},
	}
}
