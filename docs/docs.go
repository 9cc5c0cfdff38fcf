package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "StudySync API Documentation",
        "title": "StudySync API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/api/v1/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "User Registration",
                "description": "Register a new student account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "user",
                        "description": "User registration data",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "email": {
                                    "type": "string",
                                    "example": "student@example.com"
                                },
                                "username": {
                                    "type": "string",
                                    "example": "student"
                                },
                                "password": {
                                    "type": "string",
                                    "example": "password123"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "User created successfully"
                    },
                    "400": {
                        "description": "Invalid input"
                    }
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "User Login",
                "description": "Login with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "description": "Login credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "email": {
                                    "type": "string",
                                    "example": "student@example.com"
                                },
                                "password": {
                                    "type": "string",
                                    "example": "password123"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Login successful"
                    },
                    "401": {
                        "description": "Invalid credentials"
                    }
                }
            }
        },
        "/api/v1/feeds/import": {
            "post": {
                "tags": ["Feeds"],
                "summary": "Import Calendar Feed",
                "description": "Fetch and parse an ICS feed, persist the extracted class tree, and synchronize it into Google Calendar when a linked account exists",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "feed",
                        "description": "Feed location",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "feed_url": {
                                    "type": "string",
                                    "example": "https://school.example.com/calendar.ics"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Import completed; sync results included in body"
                    },
                    "422": {
                        "description": "Feed body is not a valid calendar document"
                    },
                    "502": {
                        "description": "Feed could not be fetched"
                    }
                }
            }
        },
        "/api/v1/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "Get Class Tree",
                "description": "Return the classes and assignments extracted by the most recent import",
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Class tree"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/api/v1/classes/sync": {
            "post": {
                "tags": ["Classes"],
                "summary": "Resynchronize Classes",
                "description": "Re-run Google Calendar synchronization from the persisted class tree",
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Sync completed; per-item results in body"
                    },
                    "412": {
                        "description": "No Google account linked"
                    }
                }
            }
        },
        "/api/v1/users/me": {
            "get": {
                "tags": ["Users"],
                "summary": "Get Current User",
                "description": "Get information about the currently authenticated user",
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "User information"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "StudySync API",
	Description:      "StudySync API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
