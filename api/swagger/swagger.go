package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {"title": "EduQuest Admin API", "description": "Administration backend for the EduQuest gamified learning platform", "version": "1.0.0"},
    "basePath": "/api",
    "schemes": ["http"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "tags": [
        {"name": "Auth"},
        {"name": "Users"},
        {"name": "Courses"},
        {"name": "Enrollments"},
        {"name": "Teacher Assignments"},
        {"name": "Bulk", "description": "Bulk enrollment and teacher assignment"},
        {"name": "Gamification", "description": "Point rules and level thresholds"},
        {"name": "Visual Configuration"},
        {"name": "Reports"},
        {"name": "Health"}
    ],
    "paths": {
        "/health": {
            "get": {"tags": ["Health"], "summary": "Health check", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/ready": {
            "get": {"tags": ["Health"], "summary": "Readiness check", "responses": {"200": {"description": "Ready"}, "503": {"description": "Database unreachable"}}}
        },
        "/metrics": {
            "get": {"tags": ["Health"], "summary": "Prometheus metrics", "responses": {"200": {"description": "Prometheus exposition"}}}
        },
        "/auth/login": {
            "post": {"tags": ["Auth"], "summary": "Login with email and password", "responses": {"200": {"description": "Tokens issued"}, "401": {"description": "Invalid credentials"}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}]}
        },
        "/auth/refresh": {
            "post": {"tags": ["Auth"], "summary": "Rotate refresh token", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/RefreshRequest"}}]}
        },
        "/auth/logout": {
            "post": {"tags": ["Auth"], "summary": "Revoke refresh token", "responses": {"204": {"description": "No Content"}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/RefreshRequest"}}]}
        },
        "/auth/me": {
            "get": {"tags": ["Auth"], "summary": "Current user", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/auth/change-password": {
            "post": {"tags": ["Auth"], "summary": "Change password", "responses": {"204": {"description": "No Content"}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]}
        },
        "/usuarios": {
            "get": {"tags": ["Users"], "summary": "List users", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "query", "name": "rol", "type": "string", "enum": ["administrador", "profesor", "estudiante"]}, {"in": "query", "name": "activo", "type": "boolean"}, {"in": "query", "name": "search", "type": "string"}, {"in": "query", "name": "page", "type": "integer"}, {"in": "query", "name": "page_size", "type": "integer"}], "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Users"], "summary": "Create users", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]}
        },
        "/usuarios/{id}": {
            "get": {"tags": ["Users"], "summary": "Get users", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}], "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Users"], "summary": "Update users", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Users"], "summary": "Delete users", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}], "security": [{"BearerAuth": []}]}
        },
        "/cursos": {
            "get": {"tags": ["Courses"], "summary": "List courses", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "query", "name": "activo", "type": "boolean"}, {"in": "query", "name": "search", "type": "string"}, {"in": "query", "name": "page", "type": "integer"}, {"in": "query", "name": "page_size", "type": "integer"}], "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Courses"], "summary": "Create courses", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]}
        },
        "/cursos/{id}": {
            "get": {"tags": ["Courses"], "summary": "Get courses", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}], "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Courses"], "summary": "Update courses", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Courses"], "summary": "Delete courses", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}], "security": [{"BearerAuth": []}]}
        },
        "/cursos/{id}/estudiantes": {
            "get": {"tags": ["Courses"], "summary": "Students enrolled in a course", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}], "security": [{"BearerAuth": []}]}
        },
        "/cursos/{id}/profesores": {
            "get": {"tags": ["Courses"], "summary": "Teachers assigned to a course", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}], "security": [{"BearerAuth": []}]}
        },
        "/cursos/{id}/inscribir_estudiantes": {
            "post": {"tags": ["Bulk"], "summary": "Bulk enroll students into the course", "responses": {"201": {"description": "At least one entry applied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "No entry applied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Course not found or inactive"}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]}
        },
        "/cursos/{id}/asignar_profesores": {
            "post": {"tags": ["Bulk"], "summary": "Bulk assign teachers to the course", "responses": {"201": {"description": "At least one entry applied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "No entry applied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Course not found or inactive"}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]}
        },
        "/inscripciones": {
            "get": {"tags": ["Enrollments"], "summary": "List enrollments", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "query", "name": "curso_id", "type": "string"}, {"in": "query", "name": "estudiante_id", "type": "string"}, {"in": "query", "name": "estado", "type": "string", "enum": ["activo", "completado", "retirado"]}, {"in": "query", "name": "page", "type": "integer"}, {"in": "query", "name": "page_size", "type": "integer"}], "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Enrollments"], "summary": "Create enrollments", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]}
        },
        "/inscripciones/{id}": {
            "get": {"tags": ["Enrollments"], "summary": "Get enrollments", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}], "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Enrollments"], "summary": "Delete enrollments", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}], "security": [{"BearerAuth": []}]}
        },
        "/inscripciones/{id}/cambiar_estado": {
            "patch": {"tags": ["Enrollments"], "summary": "Change enrollment state", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]}
        },
        "/inscripciones/inscripcion_masiva": {
            "post": {"tags": ["Bulk"], "summary": "Bulk enroll students", "responses": {"201": {"description": "At least one entry applied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "No entry applied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Course not found or inactive"}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/BulkEnrollRequest"}}], "security": [{"BearerAuth": []}]}
        },
        "/cursos-profesores": {
            "get": {"tags": ["Teacher Assignments"], "summary": "List teacher assignments", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "query", "name": "curso_id", "type": "string"}, {"in": "query", "name": "profesor_id", "type": "string"}, {"in": "query", "name": "rol_profesor", "type": "string", "enum": ["titular", "asistente"]}, {"in": "query", "name": "page", "type": "integer"}, {"in": "query", "name": "page_size", "type": "integer"}], "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Teacher Assignments"], "summary": "Create teacher assignments", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]}
        },
        "/cursos-profesores/{id}": {
            "get": {"tags": ["Teacher Assignments"], "summary": "Get teacher assignments", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}], "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Teacher Assignments"], "summary": "Delete teacher assignments", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}], "security": [{"BearerAuth": []}]}
        },
        "/cursos-profesores/{id}/cambiar_rol": {
            "patch": {"tags": ["Teacher Assignments"], "summary": "Change teacher role", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]}
        },
        "/cursos-profesores/asignacion_masiva": {
            "post": {"tags": ["Bulk"], "summary": "Bulk assign teachers", "responses": {"201": {"description": "At least one entry applied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "No entry applied", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Course not found or inactive"}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/BulkAssignRequest"}}], "security": [{"BearerAuth": []}]}
        },
        "/reglas-gamificacion": {
            "get": {"tags": ["Gamification"], "summary": "List gamification rules", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "query", "name": "activo", "type": "boolean"}, {"in": "query", "name": "page", "type": "integer"}, {"in": "query", "name": "page_size", "type": "integer"}], "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Gamification"], "summary": "Create gamification rules", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]}
        },
        "/reglas-gamificacion/{id}": {
            "get": {"tags": ["Gamification"], "summary": "Get gamification rules", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}], "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Gamification"], "summary": "Update gamification rules", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Gamification"], "summary": "Delete gamification rules", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}], "security": [{"BearerAuth": []}]}
        },
        "/niveles": {
            "get": {"tags": ["Gamification"], "summary": "List level thresholds", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "query", "name": "page", "type": "integer"}, {"in": "query", "name": "page_size", "type": "integer"}], "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Gamification"], "summary": "Create level thresholds", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]}
        },
        "/niveles/{id}": {
            "get": {"tags": ["Gamification"], "summary": "Get level thresholds", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}], "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Gamification"], "summary": "Update level thresholds", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Gamification"], "summary": "Delete level thresholds", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}], "security": [{"BearerAuth": []}]}
        },
        "/configuracion-visual": {
            "get": {"tags": ["Visual Configuration"], "summary": "List visual configurations", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "query", "name": "page", "type": "integer"}, {"in": "query", "name": "page_size", "type": "integer"}], "security": [{"BearerAuth": []}]},
            "post": {"tags": ["Visual Configuration"], "summary": "Create visual configurations", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]}
        },
        "/configuracion-visual/{id}": {
            "get": {"tags": ["Visual Configuration"], "summary": "Get visual configurations", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}], "security": [{"BearerAuth": []}]},
            "put": {"tags": ["Visual Configuration"], "summary": "Update visual configurations", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/Object"}}], "security": [{"BearerAuth": []}]},
            "delete": {"tags": ["Visual Configuration"], "summary": "Delete visual configurations", "responses": {"204": {"description": "No Content"}, "404": {"description": "Not found"}}, "parameters": [{"in": "path", "name": "id", "required": true, "type": "string", "format": "uuid"}], "security": [{"BearerAuth": []}]}
        },
        "/configuracion-visual/activa": {
            "get": {"tags": ["Visual Configuration"], "summary": "Active visual configuration (defaults when none)", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}
        },
        "/reportes/estadisticas_generales": {
            "get": {"tags": ["Reports"], "summary": "General statistics", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/reportes/reporte_estudiantes": {
            "get": {"tags": ["Reports"], "summary": "Per-student report", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/reportes/reporte_cursos": {
            "get": {"tags": ["Reports"], "summary": "Per-course report", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/reportes/resumen_mensual": {
            "get": {"tags": ["Reports"], "summary": "Current month summary", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}
        },
        "/reportes/exportar": {
            "post": {"tags": ["Reports"], "summary": "Export a report as CSV or PDF", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}], "security": [{"BearerAuth": []}]}
        },
        "/reportes/descargas/{token}": {
            "get": {"tags": ["Reports"], "summary": "Download an exported report", "responses": {"200": {"description": "File stream"}, "401": {"description": "Invalid or expired link"}, "404": {"description": "File not found"}}, "parameters": [{"in": "path", "name": "token", "required": true, "type": "string"}]}
        }
    },
    "definitions": {
        "Object": {"type": "object"},
        "LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "RefreshRequest": {"type": "object", "required": ["refresh"], "properties": {"refresh": {"type": "string"}}},
        "BulkEnrollRequest": {"type": "object", "required": ["curso_id", "estudiantes_ids"], "properties": {"curso_id": {"type": "string", "format": "uuid"}, "estudiantes_ids": {"type": "array", "items": {"type": "string", "format": "uuid"}}}},
        "BulkAssignRequest": {"type": "object", "required": ["curso_id", "profesores"], "properties": {"curso_id": {"type": "string", "format": "uuid"}, "profesores": {"type": "array", "items": {"type": "object", "properties": {"profesor_id": {"type": "string", "format": "uuid"}, "rol_profesor": {"type": "string", "enum": ["titular", "asistente"]}}}}}},
        "ExportRequest": {"type": "object", "required": ["tipo", "formato"], "properties": {"tipo": {"type": "string", "enum": ["estudiantes", "cursos", "estadisticas"]}, "formato": {"type": "string", "enum": ["csv", "pdf"]}}},
        "Pagination": {"type": "object", "properties": {"page": {"type": "integer"}, "page_size": {"type": "integer"}, "total_count": {"type": "integer"}}},
        "APIError": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"}}},
        "ResponseEnvelope": {"type": "object", "properties": {"data": {"type": "object"}, "error": {"$ref": "#/definitions/APIError"}, "pagination": {"$ref": "#/definitions/Pagination"}, "meta": {"type": "object"}}}
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
