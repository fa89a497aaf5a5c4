/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	errors2 "github.com/wso2/identity-consent-manager/internal/system/errors"
	"github.com/wso2/identity-consent-manager/internal/system/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoOperationTimeout = 5 * time.Second

// consentStateDocument is the stored shape of one consent state.
type consentStateDocument struct {
	Key          string    `bson:"_id"`
	ConsentValue string    `bson:"consent_value"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// MongoStore persists consent states in a MongoDB collection keyed by storage key.
type MongoStore struct {
	client     *mongo.Client
	Collection *mongo.Collection
}

// NewMongoStore connects to uri and uses database.collection for consent states.
func NewMongoStore(uri, database, collection string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, storeInitError("Failed to connect to MongoDB.", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		_ = mongoClient.Disconnect(context.Background())
		return nil, storeInitError("Failed to ping MongoDB.", err)
	}
	return &MongoStore{
		client:     mongoClient,
		Collection: mongoClient.Database(database).Collection(collection),
	}, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOperationTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// GetConsentState fetches the serialized state stored under key.
func (s *MongoStore) GetConsentState(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOperationTimeout)
	defer cancel()

	var doc consentStateDocument
	err := s.Collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		log.GetLogger().Debug(fmt.Sprintf("Consent state not found for key: %s", key))
		return nil, nil
	}
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch consent state: %s", key)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_STATE.Code,
			Message:     errors2.FETCH_CONSENT_STATE.Message,
			Description: errorMsg,
		}, err)
	}
	return []byte(doc.ConsentValue), nil
}

// SaveConsentState upserts the state stored under key.
func (s *MongoStore) SaveConsentState(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOperationTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"consent_value": string(value),
		"updated_at":    time.Now().UTC(),
	}}
	_, err := s.Collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to save consent state: %s", key)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return saveError(errorMsg, err)
	}
	return nil
}
