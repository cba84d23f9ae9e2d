// Package docs Swagger文档，由swag注解整理生成
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"termsOfService": "http://swagger.io/terms/",
		"contact": {
			"name": "API Support",
			"url": "http://www.swagger.io/support",
			"email": "support@swagger.io"
		},
		"license": {
			"name": "Apache 2.0",
			"url": "http://www.apache.org/licenses/LICENSE-2.0.html"
		},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/api/health": {
			"get": {
				"tags": [
					"系统"
				],
				"summary": "健康检查",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				}
			}
		},
		"/api/chat": {
			"post": {
				"tags": [
					"聊天"
				],
				"summary": "发送聊天消息",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "请求体",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.ChatRequest"
						}
					}
				]
			}
		},
		"/api/chat/history": {
			"get": {
				"tags": [
					"聊天"
				],
				"summary": "获取当前会话的对话记录",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				}
			},
			"delete": {
				"description": "丢弃对话记录和压力读数，返回告别语",
				"tags": [
					"聊天"
				],
				"summary": "结束当前会话",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				}
			}
		},
		"/ws/chat": {
			"get": {
				"tags": [
					"聊天"
				],
				"summary": "聊天WebSocket",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				}
			}
		},
		"/api/stress-detect": {
			"post": {
				"tags": [
					"压力检测"
				],
				"summary": "根据摄像头画面检测压力",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "请求体",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.StressDetectRequest"
						}
					}
				]
			}
		},
		"/api/stress-detect/reset": {
			"post": {
				"tags": [
					"压力检测"
				],
				"summary": "清空当前会话的压力读数",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				}
			}
		},
		"/api/stress-detect/history": {
			"get": {
				"tags": [
					"压力检测"
				],
				"summary": "当前会话的压力读数和趋势",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				}
			}
		},
		"/api/scrape/videos": {
			"get": {
				"tags": [
					"内容"
				],
				"summary": "搜索减压视频",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "搜索词",
						"name": "q",
						"in": "query"
					}
				]
			}
		},
		"/api/scrape/music": {
			"get": {
				"tags": [
					"内容"
				],
				"summary": "搜索放松音乐",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "搜索词",
						"name": "q",
						"in": "query"
					}
				]
			}
		},
		"/api/scrape/articles": {
			"get": {
				"tags": [
					"内容"
				],
				"summary": "搜索心理健康文章",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "搜索词",
						"name": "q",
						"in": "query"
					}
				]
			}
		},
		"/api/emotion-recommendations": {
			"get": {
				"tags": [
					"内容"
				],
				"summary": "按表情识别结果推荐内容",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "表情标签",
						"name": "emotion",
						"in": "query"
					}
				]
			}
		},
		"/api/cache/stats": {
			"get": {
				"tags": [
					"缓存"
				],
				"summary": "推荐缓存统计",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				}
			}
		},
		"/api/cache": {
			"delete": {
				"tags": [
					"缓存"
				],
				"summary": "清空推荐缓存",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				}
			}
		},
		"/api/mood": {
			"get": {
				"tags": [
					"心情"
				],
				"summary": "最近的心情记录及统计",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "天数",
						"name": "days",
						"in": "query"
					}
				]
			},
			"post": {
				"tags": [
					"心情"
				],
				"summary": "记录心情",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "请求体",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.MoodRequest"
						}
					}
				]
			}
		},
		"/api/journal": {
			"get": {
				"tags": [
					"日记"
				],
				"summary": "日记列表及标签统计",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				}
			},
			"post": {
				"tags": [
					"日记"
				],
				"summary": "写日记",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "请求体",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.JournalRequest"
						}
					}
				]
			}
		},
		"/api/journal/{id}": {
			"get": {
				"tags": [
					"日记"
				],
				"summary": "获取单篇日记",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "日记ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"tags": [
					"日记"
				],
				"summary": "修改日记",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"description": "日记ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "请求体",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.JournalUpdateRequest"
						}
					}
				]
			},
			"delete": {
				"tags": [
					"日记"
				],
				"summary": "删除日记",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "日记ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/api/breathe/session": {
			"post": {
				"tags": [
					"呼吸练习"
				],
				"summary": "记录一次呼吸练习",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "请求体",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/models.BreatheRequest"
						}
					}
				]
			}
		},
		"/api/streak": {
			"get": {
				"tags": [
					"心情"
				],
				"summary": "当前连续使用天数",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				}
			}
		},
		"/api/dashboard": {
			"get": {
				"tags": [
					"心情"
				],
				"summary": "首页概览",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "成功",
						"schema": {
							"$ref": "#/definitions/models.APIResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"models.APIResponse": {
			"type": "object",
			"properties": {
				"code": {
					"type": "integer",
					"example": 0
				},
				"message": {
					"type": "string",
					"example": "success"
				},
				"data": {}
			}
		},
		"models.ChatRequest": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"emotion": {
					"type": "string"
				}
			},
			"required": [
				"message"
			]
		},
		"models.StressDetectRequest": {
			"type": "object",
			"properties": {
				"image": {
					"type": "string"
				}
			},
			"required": [
				"image"
			]
		},
		"models.MoodRequest": {
			"type": "object",
			"properties": {
				"mood_level": {
					"type": "integer",
					"minimum": 1,
					"maximum": 5
				},
				"mood_emoji": {
					"type": "string"
				},
				"feelings": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"notes": {
					"type": "string"
				}
			},
			"required": [
				"mood_level",
				"mood_emoji"
			]
		},
		"models.JournalRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"content": {
					"type": "string"
				}
			},
			"required": [
				"content"
			]
		},
		"models.JournalUpdateRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"content": {
					"type": "string"
				}
			}
		},
		"models.BreatheRequest": {
			"type": "object",
			"properties": {
				"pattern": {
					"type": "string"
				},
				"cycles_completed": {
					"type": "integer"
				},
				"duration_seconds": {
					"type": "integer"
				}
			},
			"required": [
				"pattern"
			]
		}
	}
}`

// SwaggerInfo 文档元信息
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Serenity 减压助手 API",
	Description:      "基于关键词打分的减压内容推荐、聊天、压力检测和心情日记服务",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
