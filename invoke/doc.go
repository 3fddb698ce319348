// Package invoke fires requests at named Lambda functions, either
// asynchronously (fire-and-forget) or synchronously (request/response).
package invoke
