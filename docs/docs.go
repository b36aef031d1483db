// Package docs registra el documento OpenAPI servido en /swagger/doc.json.
// Se mantiene a mano junto con las anotaciones godoc de los handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/appointments": {
            "get": {
                "description": "Cola de citas ordenada por fecha. Filtros opcionales por estado y cliente.",
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Listar citas",
                "parameters": [
                    {"type": "string", "description": "Pending | In Progress | Completed | No Show", "name": "status", "in": "query"},
                    {"type": "string", "description": "ID del cliente", "name": "client_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/appointments.appointmentResponse"}}},
                    "400": {"description": "status inválido", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Crea una cita Pending. La mascota debe pertenecer al cliente.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Agendar cita",
                "parameters": [
                    {"description": "Datos de la cita; date en RFC3339", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/appointments.scheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/appointments.appointmentResponse"}},
                    "400": {"description": "invalid json / date inválida / referencias inválidas", "schema": {"type": "string"}}
                }
            }
        },
        "/appointments/{appointmentID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Obtener cita",
                "parameters": [
                    {"type": "string", "description": "ID de la cita", "name": "appointmentID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/appointments.appointmentResponse"}},
                    "404": {"description": "appointment not found", "schema": {"type": "string"}}
                }
            }
        },
        "/appointments/{appointmentID}/start": {
            "post": {
                "description": "Pending -> In Progress.",
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Iniciar consulta",
                "parameters": [
                    {"type": "string", "description": "ID de la cita", "name": "appointmentID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/appointments.appointmentResponse"}},
                    "404": {"description": "appointment not found", "schema": {"type": "string"}},
                    "409": {"description": "invalid status transition", "schema": {"type": "string"}}
                }
            }
        },
        "/appointments/{appointmentID}/analyze": {
            "post": {
                "description": "Devuelve riskScore, sentiment, summary y healthTrend. Nunca falla por el proveedor externo: usa valores de fallback y lo indica en source.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Analizar notas de la consulta",
                "parameters": [
                    {"type": "string", "description": "ID de la cita", "name": "appointmentID", "in": "path", "required": true},
                    {"description": "Notas a analizar", "name": "payload", "in": "body", "schema": {"$ref": "#/definitions/appointments.analyzeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/analysis.Result"}},
                    "400": {"description": "notes required", "schema": {"type": "string"}},
                    "404": {"description": "appointment not found", "schema": {"type": "string"}}
                }
            }
        },
        "/appointments/{appointmentID}/complete": {
            "post": {
                "description": "In Progress -> Completed. Guarda notas y métricas y agrega una entrada Medical al timeline del cliente.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Completar consulta",
                "parameters": [
                    {"type": "string", "description": "ID de la cita", "name": "appointmentID", "in": "path", "required": true},
                    {"description": "Notas + assessment (o analyze=true)", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/appointments.completeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/appointments.completeResponse"}},
                    "400": {"description": "invalid json / notes required / valores fuera de rango", "schema": {"type": "string"}},
                    "404": {"description": "appointment not found", "schema": {"type": "string"}},
                    "409": {"description": "invalid status transition", "schema": {"type": "string"}}
                }
            }
        },
        "/appointments/{appointmentID}/no-show": {
            "post": {
                "description": "Pending -> No Show.",
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Marcar ausencia",
                "parameters": [
                    {"type": "string", "description": "ID de la cita", "name": "appointmentID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/appointments.appointmentResponse"}},
                    "404": {"description": "appointment not found", "schema": {"type": "string"}},
                    "409": {"description": "invalid status transition", "schema": {"type": "string"}}
                }
            }
        },
        "/clients": {
            "get": {
                "description": "Clientes con sus mascotas. displayStatus se recalcula en cada request (\"In Limbo\" = activo sin citas futuras).",
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Listar clientes",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/clients.clientResponse"}}}
                }
            }
        },
        "/clients/{clientID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Obtener cliente",
                "parameters": [
                    {"type": "string", "description": "ID del cliente", "name": "clientID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/clients.clientResponse"}},
                    "404": {"description": "client not found", "schema": {"type": "string"}}
                }
            }
        },
        "/clients/{clientID}/plan": {
            "patch": {
                "description": "Actualiza el plan y registra una entrada Financial \"Plan updated\" en el timeline.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Cambiar plan del cliente",
                "parameters": [
                    {"type": "string", "description": "ID del cliente", "name": "clientID", "in": "path", "required": true},
                    {"description": "Nuevo plan", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/clients.changePlanRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/clients.clientResponse"}},
                    "400": {"description": "invalid json / plan inválido", "schema": {"type": "string"}},
                    "404": {"description": "client not found", "schema": {"type": "string"}}
                }
            }
        },
        "/clients/{clientID}/logs": {
            "get": {
                "description": "Entradas de auditoría del cliente, más reciente primero.",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "Timeline de un cliente",
                "parameters": [
                    {"type": "string", "description": "ID del cliente", "name": "clientID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/audit.LogResponse"}}}
                }
            }
        },
        "/logs": {
            "post": {
                "description": "Agrega una entrada al timeline de un cliente (cambios de plan, vacunas, etc.). Las entradas nunca se modifican ni se borran.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "Registrar entrada de auditoría",
                "parameters": [
                    {"description": "Entrada; timestamp RFC3339 opcional", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/audit.appendLogRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/audit.LogResponse"}},
                    "400": {"description": "invalid json / timestamp inválido / campos requeridos", "schema": {"type": "string"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "description": "Clientes activos, clientes en limbo (activos sin citas futuras), citas pendientes, score de salud medio, distribución de riesgo y tendencia por día. Se recalcula en cada request.",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "KPIs del tablero",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboard.overviewResponse"}}
                }
            }
        },
        "/dashboard/limbo": {
            "get": {
                "description": "Clientes activos sin ninguna cita futura (requieren seguimiento).",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Clientes en limbo",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dashboard.limboClientResponse"}}}
                }
            }
        }
    },
    "definitions": {
        "analysis.Assessment": {
            "type": "object",
            "properties": {
                "riskScore": {"type": "integer"},
                "sentiment": {"type": "string", "enum": ["Positive", "Neutral", "Negative"]},
                "summary": {"type": "string"},
                "healthTrend": {"type": "string", "enum": ["improving", "stable", "declining"]}
            }
        },
        "analysis.Result": {
            "type": "object",
            "properties": {
                "riskScore": {"type": "integer"},
                "sentiment": {"type": "string"},
                "summary": {"type": "string"},
                "healthTrend": {"type": "string"},
                "source": {"type": "string", "enum": ["no_credential", "provider_success", "provider_failure"]}
            }
        },
        "appointments.analyzeRequest": {
            "type": "object",
            "properties": {
                "notes": {"type": "string"}
            }
        },
        "appointments.scheduleRequest": {
            "type": "object",
            "properties": {
                "clientId": {"type": "string"},
                "petId": {"type": "string"},
                "vetName": {"type": "string"},
                "date": {"type": "string"},
                "serviceType": {"type": "string", "enum": ["Welcome", "Routine", "Post-Vet"]},
                "notes": {"type": "string"}
            }
        },
        "appointments.completeRequest": {
            "type": "object",
            "properties": {
                "notes": {"type": "string"},
                "assessment": {"$ref": "#/definitions/analysis.Assessment"},
                "analyze": {"type": "boolean"},
                "vetRating": {"type": "integer"}
            }
        },
        "appointments.appointmentResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "clientId": {"type": "string"},
                "petId": {"type": "string"},
                "petName": {"type": "string"},
                "vetName": {"type": "string"},
                "date": {"type": "string"},
                "status": {"type": "string", "enum": ["Pending", "In Progress", "Completed", "No Show"]},
                "serviceType": {"type": "string"},
                "notes": {"type": "string"},
                "vetRating": {"type": "integer"},
                "riskScore": {"type": "integer"},
                "sentiment": {"type": "string"},
                "healthEvolution": {"type": "string"}
            }
        },
        "appointments.completeResponse": {
            "type": "object",
            "properties": {
                "appointment": {"$ref": "#/definitions/appointments.appointmentResponse"},
                "log": {"$ref": "#/definitions/audit.LogResponse"}
            }
        },
        "audit.appendLogRequest": {
            "type": "object",
            "properties": {
                "clientId": {"type": "string"},
                "petId": {"type": "string"},
                "action": {"type": "string"},
                "user": {"type": "string"},
                "details": {"type": "string"},
                "type": {"type": "string", "enum": ["Medical", "Admin", "Financial"]},
                "timestamp": {"type": "string"}
            }
        },
        "audit.LogResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "clientId": {"type": "string"},
                "petId": {"type": "string"},
                "timestamp": {"type": "string"},
                "action": {"type": "string"},
                "user": {"type": "string"},
                "details": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "clients.changePlanRequest": {
            "type": "object",
            "properties": {
                "plan": {"type": "string", "enum": ["Basic", "Premium", "Gold"]},
                "actor": {"type": "string"}
            }
        },
        "clients.petResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "breed": {"type": "string"},
                "age": {"type": "integer"},
                "weight": {"type": "number"},
                "imageUrl": {"type": "string"}
            }
        },
        "clients.clientResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "plan": {"type": "string"},
                "status": {"type": "string"},
                "displayStatus": {"type": "string", "enum": ["Active", "Inactive", "In Limbo"]},
                "joinedDate": {"type": "string"},
                "pets": {"type": "array", "items": {"$ref": "#/definitions/clients.petResponse"}}
            }
        },
        "dashboard.limboClientResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "plan": {"type": "string"},
                "pets": {"type": "integer"}
            }
        },
        "dashboard.overviewResponse": {
            "type": "object",
            "properties": {
                "activeClients": {"type": "integer"},
                "limboCount": {"type": "integer"},
                "limboClients": {"type": "array", "items": {"$ref": "#/definitions/dashboard.limboClientResponse"}},
                "pendingAppointments": {"type": "integer"},
                "averageHealthScore": {"type": "number"},
                "riskDistribution": {"type": "object"},
                "healthTrend": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Vet Clinic Ops API",
	Description:      "Operación diaria de la clínica: cola de citas, análisis de consultas, timeline de auditoría y KPIs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
