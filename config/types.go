package config

import (
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// DatabaseConfig MySQL settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// JWTConfig token signing settings
type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// MinioConfig Minio object storage settings
type MinioConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Region          string `mapstructure:"region"`
}

// OSSConfig Aliyun OSS settings
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
}

// LocalConfig local filesystem storage settings
type LocalConfig struct {
	BaseDir string `mapstructure:"base_dir"` // storage root, e.g. /data/exhibits
}

// StorageConfig exhibit file storage settings
type StorageConfig struct {
	Type  string      `mapstructure:"type"` // local/oss/minio
	Local LocalConfig `mapstructure:"local"`
	OSS   OSSConfig   `mapstructure:"oss"`
	Minio MinioConfig `mapstructure:"minio"`
}

// CORSConfig cross-origin settings
type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	ExposeHeaders    []string `mapstructure:"expose_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           string   `mapstructure:"max_age"`
}

// MilvusConfig vector index settings
type MilvusConfig struct {
	Address         string `mapstructure:"address"`
	CollectionName  string `mapstructure:"collection_name"`
	VectorDimension int    `mapstructure:"vector_dimension"`
	IndexType       string `mapstructure:"index_type"`
	MetricType      string `mapstructure:"metric_type"`
	Nlist           int    `mapstructure:"nlist"`
	Nprobe          int    `mapstructure:"nprobe"`
}

// GetMetricType maps the configured metric name to a Milvus metric type.
func (m *MilvusConfig) GetMetricType() entity.MetricType {
	var metricType entity.MetricType
	switch m.MetricType {
	case "L2":
		metricType = entity.L2
	case "IP":
		metricType = entity.IP
	default:
		metricType = entity.COSINE // best fit for text semantic search
	}
	return metricType
}

// GetMilvusIndex builds the vector index from config.
func (m *MilvusConfig) GetMilvusIndex() (entity.Index, error) {
	metricType := m.GetMetricType()

	var (
		idx entity.Index
		err error
	)
	if m.Nlist <= 0 {
		m.Nlist = 128
	}

	switch m.IndexType {
	case "IVF_FLAT":
		idx, err = entity.NewIndexIvfFlat(metricType, m.Nlist)
	case "IVF_SQ8":
		idx, err = entity.NewIndexIvfSQ8(metricType, m.Nlist)
	case "HNSW":
		// M=8, efConstruction=40
		idx, err = entity.NewIndexHNSW(metricType, 8, 40)
	default:
		idx, err = entity.NewIndexIvfFlat(metricType, m.Nlist)
	}
	return idx, err
}

// LLMConfig chat completion model settings
type LLMConfig struct {
	Server      string  `mapstructure:"server"` // openai/ollama
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
}

// EmbeddingConfig embedding model settings
type EmbeddingConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`
	Dimension int    `mapstructure:"dimension"`
}

// RAGConfig ingestion and retrieval defaults
type RAGConfig struct {
	ChunkSize   int `mapstructure:"chunk_size"`
	OverlapSize int `mapstructure:"overlap_size"`
	ChunkCount  int `mapstructure:"chunk_count"` // default grounding passages per request
}

// AgentConfig orchestration layer settings
type AgentConfig struct {
	MCPServers  []string `mapstructure:"mcp_servers"`
	ToolServers []string `mapstructure:"tool_servers"` // OpenAPI-described remote tool servers
	MaxStep     int      `mapstructure:"max_step"`
	Prompt      string   `mapstructure:"prompt"`
}

// AppConfig application configuration
type AppConfig struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Storage   StorageConfig   `mapstructure:"storage"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Milvus    MilvusConfig    `mapstructure:"milvus"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	RAG       RAGConfig       `mapstructure:"rag"`
	Agent     AgentConfig     `mapstructure:"agent"`
}
