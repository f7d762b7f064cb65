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

import dbmodel "github.com/campuslink/authkit/internal/system/database/model"

// QueryCreateKeyValueTable creates the key-value table when it does not exist.
var QueryCreateKeyValueTable = dbmodel.DBQuery{
	ID: "KVQ-00001",
	Query: "CREATE TABLE IF NOT EXISTS KEY_VALUE_STORE (" +
		"NAMESPACE VARCHAR(255) NOT NULL, " +
		"ITEM_KEY VARCHAR(255) NOT NULL, " +
		"ITEM_VALUE TEXT NOT NULL, " +
		"UPDATED_AT TIMESTAMP NOT NULL, " +
		"PRIMARY KEY (NAMESPACE, ITEM_KEY))",
}

// QueryGetItem retrieves the value of a key within a namespace.
var QueryGetItem = dbmodel.DBQuery{
	ID:            "KVQ-00002",
	PostgresQuery: "SELECT ITEM_VALUE FROM KEY_VALUE_STORE WHERE NAMESPACE = $1 AND ITEM_KEY = $2",
	SQLiteQuery:   "SELECT ITEM_VALUE FROM KEY_VALUE_STORE WHERE NAMESPACE = ? AND ITEM_KEY = ?",
}

// QueryUpsertItem inserts a value or replaces the existing value of a key within a namespace.
var QueryUpsertItem = dbmodel.DBQuery{
	ID: "KVQ-00003",
	PostgresQuery: "INSERT INTO KEY_VALUE_STORE (NAMESPACE, ITEM_KEY, ITEM_VALUE, UPDATED_AT) " +
		"VALUES ($1, $2, $3, $4) ON CONFLICT (NAMESPACE, ITEM_KEY) " +
		"DO UPDATE SET ITEM_VALUE = EXCLUDED.ITEM_VALUE, UPDATED_AT = EXCLUDED.UPDATED_AT",
	SQLiteQuery: "INSERT INTO KEY_VALUE_STORE (NAMESPACE, ITEM_KEY, ITEM_VALUE, UPDATED_AT) " +
		"VALUES (?, ?, ?, ?) ON CONFLICT (NAMESPACE, ITEM_KEY) " +
		"DO UPDATE SET ITEM_VALUE = excluded.ITEM_VALUE, UPDATED_AT = excluded.UPDATED_AT",
}

// QueryDeleteItem removes a key within a namespace.
var QueryDeleteItem = dbmodel.DBQuery{
	ID:            "KVQ-00004",
	PostgresQuery: "DELETE FROM KEY_VALUE_STORE WHERE NAMESPACE = $1 AND ITEM_KEY = $2",
	SQLiteQuery:   "DELETE FROM KEY_VALUE_STORE WHERE NAMESPACE = ? AND ITEM_KEY = ?",
}
