package main

// General API documentation for swaggo. Run `swag init -g cmd/classifyd/docs.go -o docs` to regenerate.
//
// @title           classifyd API
// @version         1.0
// @description     Furniture image classification service: upload a photo, get the predicted product line.
//
// @contact.name   classifyd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
