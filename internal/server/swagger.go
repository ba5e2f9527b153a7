package server

//go:generate swag init -g swagger.go -d ./,../employee -o docs

// @title apiprobe demo employee API
// @version 0.1
// @description CRUD over employees, the API the apiprobe console targets by default.
// @contact.name apiprobe maintainers
// @contact.url https://github.com/raysh454/apiprobe
// @BasePath /api/v1
