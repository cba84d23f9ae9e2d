package docs

// @title Serenity 减压助手 API
// @version 1.0
// @description 基于关键词打分的减压内容推荐、聊天、压力检测和心情日记服务
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @schemes http https
