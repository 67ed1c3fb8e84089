package main

// General API documentation for swaggo. Run `swag init -g cmd/fogproxy/docs.go -o internal/httpapi/docs` to regenerate.
//
// @title           fogproxy API
// @version         1.0
// @description     HTTP API of a fog computing inference proxy node.
//
// @contact.name   fogproxy maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
