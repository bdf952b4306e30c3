package dynamo_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Obrix-api/internal/domain/entity"
	"github.com/jhoicas/Obrix-api/internal/infrastructure/dynamo"
)

// fakeDynamo tabla en memoria indexada por user_id.
type fakeDynamo struct {
	items map[string]map[string]types.AttributeValue
}

func newFake() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func pk(k map[string]types.AttributeValue) string {
	return k["user_id"].(*types.AttributeValueMemberS).Value
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.items[pk(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[pk(in.Key)]}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	delete(f.items, pk(in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestDraftStore_GuardarLeerBorrar(t *testing.T) {
	ctx := context.Background()
	store := dynamo.NewDraftStore(newFake(), "drafts")

	d, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, d, "sin borrador devuelve nil")

	input := json.RawMessage(`{"unit":"sqft","width":"10"}`)
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, &entity.EstimateDraft{UserID: "u1", CompanyID: "c1", Name: "Baño", Input: input, UpdatedAt: now}))

	d, err = store.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "Baño", d.Name)
	assert.Equal(t, "c1", d.CompanyID)
	assert.JSONEq(t, string(input), string(d.Input))
	assert.True(t, now.Equal(d.UpdatedAt))

	// Un segundo Save reemplaza el anterior (un borrador por usuario)
	require.NoError(t, store.Save(ctx, &entity.EstimateDraft{UserID: "u1", Name: "Cocina", Input: input, UpdatedAt: now}))
	d, _ = store.Get(ctx, "u1")
	assert.Equal(t, "Cocina", d.Name)

	require.NoError(t, store.Delete(ctx, "u1"))
	d, err = store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, d)
}
