package userRepo

import (
	"testing"

	"winetrail/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserDocument_ToModel(t *testing.T) {
	oid := primitive.NewObjectID()
	data, err := bson.Marshal(bson.M{"_id": oid, "name": "Ana", "email": "ana@example.com", "password": "hash"})
	require.NoError(t, err)

	var doc userDocument
	require.NoError(t, bson.Unmarshal(data, &doc))
	u := doc.toModel()

	assert.Equal(t, oid.Hex(), u.ID)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Equal(t, "ana@example.com", u.Email)
}
