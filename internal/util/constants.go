package util

// DateFormat 统计接口日期参数格式
const DateFormat = "2006-01-02"

// ContextUserKey 鉴权中间件写入 JWT Claims 的上下文键
const ContextUserKey = "user"

// RecentAttemptsLimit 历史记录接口返回的最大条数
const RecentAttemptsLimit = 10

// KnowledgeQuizSampleSize 知识测验每次随机抽取的题数
const KnowledgeQuizSampleSize = 10
