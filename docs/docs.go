// Package docs holds the swagger spec served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {
			"name": "API Support"
		},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/ping": {
			"get": {
				"summary": "Health check",
				"tags": [
					"health"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/donations/intents": {
			"post": {
				"summary": "Create a donation payment intent",
				"tags": [
					"donations"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.CreateIntentRequest"
						}
					}
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad Request"
					},
					"422": {
						"description": "Unprocessable Entity"
					},
					"502": {
						"description": "Bad Gateway"
					}
				}
			}
		},
		"/donations/intents/{intent_id}/confirm": {
			"post": {
				"summary": "Confirm a payment intent",
				"tags": [
					"donations"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "intent_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "Succeeded"
					},
					"202": {
						"description": "Requires action"
					},
					"402": {
						"description": "Declined"
					},
					"403": {
						"description": "Forbidden"
					},
					"404": {
						"description": "Not Found"
					},
					"502": {
						"description": "Bad Gateway"
					}
				}
			}
		},
		"/donations/webhooks/{provider}": {
			"post": {
				"summary": "Gateway notification",
				"tags": [
					"webhooks"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "provider",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.WebhookRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "Processed"
					},
					"401": {
						"description": "Invalid signature"
					},
					"404": {
						"description": "Unknown provider"
					}
				}
			}
		},
		"/donations/payments/{payment_id}": {
			"get": {
				"summary": "Payment detail",
				"tags": [
					"donations"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "payment_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "Forbidden"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/donations/payments/{payment_id}/refunds": {
			"post": {
				"summary": "Refund a donation fully or partially",
				"tags": [
					"refunds"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "payment_id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Retries with the same key return the original refund",
						"name": "Idempotency-Key",
						"in": "header"
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.RefundRequest"
						}
					}
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"202": {
						"description": "Reconciliation pending"
					},
					"403": {
						"description": "Forbidden"
					},
					"409": {
						"description": "Idempotency key reused with another amount"
					},
					"422": {
						"description": "Unprocessable Entity"
					},
					"502": {
						"description": "Bad Gateway"
					}
				}
			}
		},
		"/donations/history": {
			"get": {
				"summary": "Donation history of the caller",
				"tags": [
					"donations"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/donations/history/summary": {
			"get": {
				"summary": "Donation totals of the caller",
				"tags": [
					"donations"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/campaigns": {
			"post": {
				"summary": "Register a campaign ledger",
				"tags": [
					"campaigns"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/request.RegisterCampaignRequest"
						}
					}
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"403": {
						"description": "Forbidden"
					},
					"409": {
						"description": "Conflict"
					}
				}
			}
		},
		"/campaigns/{campaign_id}": {
			"get": {
				"summary": "Campaign ledger view",
				"tags": [
					"campaigns"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "campaign_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/campaigns/{campaign_id}/activate": {
			"patch": {
				"summary": "Activate a campaign",
				"tags": [
					"campaigns"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "campaign_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "Forbidden"
					},
					"409": {
						"description": "Conflict"
					}
				}
			}
		},
		"/campaigns/{campaign_id}/pause": {
			"patch": {
				"summary": "Pause a campaign",
				"tags": [
					"campaigns"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "campaign_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "Forbidden"
					},
					"409": {
						"description": "Conflict"
					}
				}
			}
		},
		"/campaigns/{campaign_id}/complete": {
			"patch": {
				"summary": "Complete a campaign",
				"tags": [
					"campaigns"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "campaign_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "Forbidden"
					},
					"409": {
						"description": "Conflict"
					}
				}
			}
		},
		"/campaigns/{campaign_id}/donations": {
			"get": {
				"summary": "Payments of a campaign (owner or admin)",
				"tags": [
					"campaigns"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "campaign_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "Forbidden"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/campaigns/{campaign_id}/donations/stats": {
			"get": {
				"summary": "Campaign donation stats",
				"tags": [
					"campaigns"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "campaign_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/campaigns/{campaign_id}/donations/donors": {
			"get": {
				"summary": "Campaign donor listing",
				"tags": [
					"campaigns"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "campaign_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found"
					}
				}
			}
		},
		"/admin/reconciliation/tasks": {
			"get": {
				"summary": "Pending reconciliation tasks",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "Forbidden"
					}
				}
			}
		},
		"/admin/reconciliation/drain": {
			"post": {
				"summary": "Drain the reconciliation queue",
				"tags": [
					"admin"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"Bearer": []
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"403": {
						"description": "Forbidden"
					}
				}
			}
		}
	},
	"definitions": {
		"request.CreateIntentRequest": {
			"type": "object",
			"required": [
				"campaign_id",
				"amount"
			],
			"properties": {
				"campaign_id": {
					"type": "string"
				},
				"amount": {
					"type": "string",
					"example": "25.00"
				},
				"currency": {
					"type": "string",
					"example": "USD"
				},
				"anonymous": {
					"type": "boolean"
				},
				"message": {
					"type": "string"
				},
				"provider_payload": {
					"type": "object"
				}
			}
		},
		"request.RefundRequest": {
			"type": "object",
			"properties": {
				"amount": {
					"type": "string"
				},
				"reason": {
					"type": "string"
				}
			}
		},
		"request.RegisterCampaignRequest": {
			"type": "object",
			"required": [
				"title",
				"type",
				"currency"
			],
			"properties": {
				"id": {
					"type": "string"
				},
				"owner_id": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"type": {
					"type": "string",
					"example": "crowdfunding"
				},
				"currency": {
					"type": "string",
					"example": "USD"
				},
				"goal_amount": {
					"type": "string",
					"example": "1000.00"
				}
			}
		},
		"request.WebhookRequest": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string"
				},
				"intent_id": {
					"type": "string"
				},
				"data": {
					"type": "object"
				}
			}
		}
	},
	"securityDefinitions": {
		"Bearer": {
			"description": "Type \"Bearer\" followed by a space and JWT token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Donation Service API",
	Description:      "Donation payments, refunds and campaign ledger reconciliation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
