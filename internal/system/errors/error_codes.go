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

package errors

const errorPrefix = "CMS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while marshalling JSON.",
	}

	UNMARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while un-marshalling JSON.",
	}

	FETCH_CONSENT_STATE = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while fetching consent state.",
	}

	SAVE_CONSENT_STATE = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while saving consent state.",
	}

	LOAD_CONSENT_CATALOG = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while loading consent catalog.",
	}

	STORE_INIT = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Unable to initialize consent state store.",
	}

	// Client error codes
	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	CONSENT_NOT_INITIALIZED = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Consent state not initialized.",
		Description: "The consent state engine must be initialized before it is used.",
	}

	CONSENT_ALREADY_INITIALIZED = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Consent state already initialized.",
		Description: "The consent state engine can only be initialized once.",
	}

	UNKNOWN_CONSENT_CATEGORY = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Unknown consent category.",
	}

	INVALID_CONSENT_SELECTION = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "Invalid consent selection.",
	}

	INVALID_CONSENT_CATALOG = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Invalid consent catalog.",
	}

	INVALID_VISITOR = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Invalid visitor.",
	}
)
