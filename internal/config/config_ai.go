package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetAnalyzeConfig returns the AI configuration for the resume analysis
// operation with fallback to global config
func (c *Config) GetAnalyzeConfig() OperationAIConfig {
	config := c.AI.Analyze

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.AnalyzeResume == "" {
		config.CustomPrompts.AnalyzeResume = c.AI.CustomPrompts.AnalyzeResume
	}

	return config
}

// GetComplianceConfig returns the AI configuration for the ATS compliance
// check with fallback to global config
func (c *Config) GetComplianceConfig() OperationAIConfig {
	config := c.AI.Compliance

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.CheckCompliance == "" {
		config.CustomPrompts.CheckCompliance = c.AI.CustomPrompts.CheckCompliance
	}

	return config
}

// GetTranslateConfig returns the AI configuration for translation with
// fallback to global config
func (c *Config) GetTranslateConfig() OperationAIConfig {
	config := c.AI.Translate

	c.applyOperationDefaults(&config)

	if config.CustomPrompts.Translate == "" {
		config.CustomPrompts.Translate = c.AI.CustomPrompts.Translate
	}

	return config
}
