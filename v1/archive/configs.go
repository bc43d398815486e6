package archive

// Archive backend types.
const (
	// TypeLocal stores documents in a local directory.
	TypeLocal = "local"

	// TypeMinio stores documents in a MinIO bucket.
	TypeMinio = "minio"
)

// Default configuration values.
const (
	// DefaultType is the backend used when none is configured.
	DefaultType = TypeLocal

	// DefaultLocalDir is the directory for the local backend.
	DefaultLocalDir = "specs"
)

// LocalConfig holds the settings for the local directory backend.
type LocalConfig struct {
	// Dir is the directory documents are written to. Created if
	// missing. Defaults to DefaultLocalDir.
	Dir string `yaml:"dir" envconfig:"ARCHIVE_LOCAL_DIR"`
}

// MinioConfig holds the settings for the MinIO backend.
type MinioConfig struct {
	// Endpoint is the MinIO server address (host:port).
	Endpoint string `yaml:"endpoint" envconfig:"ARCHIVE_MINIO_ENDPOINT"`

	// AccessKeyID is the access key for authentication.
	AccessKeyID string `yaml:"access_key_id" envconfig:"ARCHIVE_MINIO_ACCESS_KEY_ID"`

	// SecretAccessKey is the secret key for authentication. Held in
	// memory only.
	SecretAccessKey string `yaml:"secret_access_key" envconfig:"ARCHIVE_MINIO_SECRET_ACCESS_KEY"`

	// UseSSL enables TLS for the connection.
	UseSSL bool `yaml:"use_ssl" envconfig:"ARCHIVE_MINIO_USE_SSL"`

	// Region is the bucket region.
	Region string `yaml:"region" envconfig:"ARCHIVE_MINIO_REGION"`

	// Bucket is the bucket documents are stored in. Created on start
	// if missing.
	Bucket string `yaml:"bucket" envconfig:"ARCHIVE_MINIO_BUCKET"`
}

// Config selects and configures an archive backend.
type Config struct {
	// Type selects the backend: "local" or "minio". Defaults to
	// DefaultType.
	Type string `yaml:"type" envconfig:"ARCHIVE_TYPE"`

	// Local configures the local directory backend.
	Local LocalConfig `yaml:"local"`

	// Minio configures the MinIO backend.
	Minio MinioConfig `yaml:"minio"`
}
