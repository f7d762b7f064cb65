/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
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
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type MemoryStoreTestSuite struct {
	suite.Suite
	store *MemoryStore
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreTestSuite))
}

func (suite *MemoryStoreTestSuite) SetupTest() {
	suite.store = NewMemoryStore()
	suite.ctx = context.Background()
}

func (suite *MemoryStoreTestSuite) TestGetMissingItem() {
	value, ok, err := suite.store.GetItem(suite.ctx, TokenStorageKey)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
	assert.Empty(suite.T(), value)
}

func (suite *MemoryStoreTestSuite) TestSetGetRemove() {
	assert.NoError(suite.T(), suite.store.SetItem(suite.ctx, TokenStorageKey, `{"access_token":"AAA"}`))

	value, ok, err := suite.store.GetItem(suite.ctx, TokenStorageKey)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), `{"access_token":"AAA"}`, value)

	assert.NoError(suite.T(), suite.store.SetItem(suite.ctx, TokenStorageKey, "replaced"))
	value, _, _ = suite.store.GetItem(suite.ctx, TokenStorageKey)
	assert.Equal(suite.T(), "replaced", value)

	assert.NoError(suite.T(), suite.store.RemoveItem(suite.ctx, TokenStorageKey))
	_, ok, err = suite.store.GetItem(suite.ctx, TokenStorageKey)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

func (suite *MemoryStoreTestSuite) TestRemoveMissingItem() {
	assert.NoError(suite.T(), suite.store.RemoveItem(suite.ctx, "missing"))
}

func (suite *MemoryStoreTestSuite) TestEmptyKey() {
	_, _, err := suite.store.GetItem(suite.ctx, "")
	assert.ErrorIs(suite.T(), err, ErrEmptyKey)
	assert.ErrorIs(suite.T(), suite.store.SetItem(suite.ctx, "", "v"), ErrEmptyKey)
	assert.ErrorIs(suite.T(), suite.store.RemoveItem(suite.ctx, ""), ErrEmptyKey)
}

func (suite *MemoryStoreTestSuite) TestConcurrentAccess() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%5)
			_ = suite.store.SetItem(suite.ctx, key, fmt.Sprintf("value-%d", i))
			_, _, _ = suite.store.GetItem(suite.ctx, key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		_, ok, err := suite.store.GetItem(suite.ctx, fmt.Sprintf("key-%d", i))
		assert.NoError(suite.T(), err)
		assert.True(suite.T(), ok)
	}
}
