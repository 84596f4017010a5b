package document

import "github.com/batuta-io/batuta/pkg/schema"

// Fixture documents served by the extractor, matched by filename keywords.

func requirementsDocument() schema.Document {
	return schema.Document{
		Title: "User Authentication System - Requirements Document",
		Pages: 15,
		Content: `1. INTRODUCTION
This document outlines the requirements for implementing a secure user authentication system.

2. FUNCTIONAL REQUIREMENTS
2.1 User Registration
- Users must be able to create accounts with email and password
- Email validation is required before account activation
- Password must meet complexity requirements (8+ characters, mixed case, numbers, symbols)

2.2 User Login
- Users must authenticate with email and password
- System must support "Remember Me" functionality
- Failed login attempts must be tracked and limited

2.3 Password Management
- Users must be able to reset forgotten passwords
- Password reset must use secure email verification
- Users must be able to change passwords when logged in

3. NON-FUNCTIONAL REQUIREMENTS
3.1 Security
- All passwords must be hashed using bcrypt or similar
- Session tokens must expire after 30 minutes of inactivity
- All authentication endpoints must use HTTPS

3.2 Performance
- Login response time must be under 2 seconds
- System must support 1000+ concurrent users

4. ACCEPTANCE CRITERIA
- User can successfully register with valid information
- User receives email confirmation after registration
- User can log in with valid credentials
- User cannot log in with invalid credentials
- User account locks after 5 failed attempts
- User can reset password using email link
`,
		Sections: []schema.DocumentSection{
			{ID: "1", Title: "Introduction", Content: "This document outlines the requirements for implementing a secure user authentication system.", Page: 1, Type: "content"},
			{ID: "2", Title: "Functional Requirements", Content: "User Registration, User Login, Password Management requirements.", Page: 2, Type: "requirements"},
			{ID: "3", Title: "Non-Functional Requirements", Content: "Security and Performance requirements.", Page: 8, Type: "requirements"},
			{ID: "4", Title: "Acceptance Criteria", Content: "Detailed acceptance criteria for all features.", Page: 12, Type: "criteria"},
		},
	}
}

func apiSpecDocument() schema.Document {
	return schema.Document{
		Title: "REST API Specification v2.1",
		Pages: 25,
		Content: `API SPECIFICATION

1. AUTHENTICATION ENDPOINTS
POST /api/auth/login
- Request: {"email": "string", "password": "string"}
- Response: {"token": "string", "expires": "datetime"}

POST /api/auth/register
- Request: {"email": "string", "password": "string", "firstName": "string", "lastName": "string"}
- Response: {"userId": "string", "message": "string"}

2. USER MANAGEMENT ENDPOINTS
GET /api/users/profile
- Headers: Authorization: Bearer <token>
- Response: {"userId": "string", "email": "string", "profile": {}}

PUT /api/users/profile
- Headers: Authorization: Bearer <token>
- Request: {"firstName": "string", "lastName": "string", "phone": "string"}
- Response: {"success": "boolean", "message": "string"}

3. ERROR RESPONSES
- 400 Bad Request: Invalid input parameters
- 401 Unauthorized: Invalid or expired token
- 403 Forbidden: Insufficient permissions
- 404 Not Found: Resource not found
- 500 Internal Server Error: Server error
`,
		Sections: []schema.DocumentSection{
			{ID: "1", Title: "Authentication Endpoints", Content: "POST /api/auth/login, POST /api/auth/register", Page: 3, Type: "api_spec"},
			{ID: "2", Title: "User Management Endpoints", Content: "GET /api/users/profile, PUT /api/users/profile", Page: 8, Type: "api_spec"},
		},
	}
}

func genericDocument(name string) schema.Document {
	return schema.Document{
		Title:   "Document: " + name,
		Pages:   5,
		Content: "This is a sample document with generic content.",
		Sections: []schema.DocumentSection{
			{ID: "1", Title: "Generic Section", Content: "Sample content from the document", Page: 1, Type: "content"},
		},
	}
}
