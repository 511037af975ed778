package config

type (
	DriverConfig struct {
		Redis    Redis
		SQLite   SQLite
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	SQLite struct {
		Path string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
)
