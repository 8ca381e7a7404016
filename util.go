package bed

func WhichSQLiteDriver() string {
	return whichSQLiteDriver
}
