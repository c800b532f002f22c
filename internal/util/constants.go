package util

// 存储后端类型，对应配置项 storage.type
const (
	StorageNone  = "none"
	StorageLocal = "local"
	StorageMinio = "minio"
)
