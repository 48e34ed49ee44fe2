package storage

type (
	// Config is the storage connection settings.
	Config struct {
		Type           string         `yaml:"Type"`
		LevelDBOptions LevelDBOptions `yaml:"LevelDBOptions"`
		BoltDBOptions  BoltDBOptions  `yaml:"BoltDBOptions"`
	}

	// LevelDBOptions is the configuration for the LevelDB storage.
	LevelDBOptions struct {
		DataDirectoryPath string `yaml:"DataDirectoryPath"`
	}

	// BoltDBOptions is the configuration for the BoltDB storage.
	BoltDBOptions struct {
		FilePath string `yaml:"FilePath"`
	}
)
