package bench

// benchmarksConfig holds all parameters for each benchmark.
type benchmarksConfig struct {
	benchmarkSimpleConfig
	benchmarkComplexConfig
	benchmarkManyConfig
	benchmarkLargeConfig
}

func getDefaultConfig() benchmarksConfig {
	return benchmarksConfig{
		benchmarkSimpleConfig: benchmarkSimpleConfig{
			insertXUsers: 100_000,
		},

		benchmarkComplexConfig: benchmarkComplexConfig{
			insertXUsers:              200,
			insertYArticlesPerUser:    50,
			insertZCommentsPerArticle: 10,
		},

		benchmarkManyConfig: benchmarkManyConfig{
			insertXUsers:     1_000,
			queryUsersYTimes: 500,
			queryConnections: 10,
		},

		benchmarkLargeConfig: benchmarkLargeConfig{
			insertXPayloads: 5_000,
			payloadYBytes:   10_000,
		},
	}
}

func getQuickConfig() benchmarksConfig {
	conf := getDefaultConfig()
	conf.benchmarkSimpleConfig.insertXUsers = 10_000
	conf.benchmarkComplexConfig.insertXUsers = 50
	conf.benchmarkManyConfig.queryUsersYTimes = 100
	conf.benchmarkLargeConfig.insertXPayloads = 500
	return conf
}
