package dialect

var db2Queries = Queries{
	TestConnection:  `SELECT 1 FROM SYSIBM.SYSDUMMY1`,
	CurrentDatabase: `SELECT CURRENT SERVER AS NAME FROM SYSIBM.SYSDUMMY1`,
	FetchTables: `SELECT
	T.TABNAME AS TABLENAME,
	CASE WHEN T.TYPE = 'V' THEN 1 ELSE 0 END AS ISVIEW,
	T.COLCOUNT AS NUMBEROFCOLUMNS,
	CURRENT SERVER AS TABLECATALOG,
	CURRENT SERVER AS DBNAME,
	TRIM(T.TABSCHEMA) AS TABLESCHEMA,
	CASE WHEN T.TYPE = 'V' THEN 'connection.views' ELSE 'connection.tables' END AS TREE
FROM SYSCAT.TABLES T
WHERE T.TYPE IN ('T', 'V') AND T.TABSCHEMA NOT LIKE 'SYS%'
ORDER BY T.TABSCHEMA, T.TABNAME`,
	FetchColumns: `SELECT
	C.COLNAME AS COLUMNNAME,
	C.DEFAULT AS DEFAULTVALUE,
	CASE WHEN C.NULLS = 'Y' THEN 'yes' ELSE 'no' END AS ISNULLABLE,
	C.LENGTH AS "Size",
	C.TYPENAME AS "Type",
	CURRENT SERVER AS TABLECATALOG,
	CURRENT SERVER AS DBNAME,
	C.TABNAME AS TABLENAME,
	TRIM(C.TABSCHEMA) AS TABLESCHEMA,
	CASE TC.TYPE WHEN 'P' THEN 'P' WHEN 'F' THEN 'R' END AS KEYTYPE,
	'connection.column' AS TREE
FROM SYSCAT.COLUMNS C
LEFT JOIN SYSCAT.KEYCOLUSE K
	ON K.TABSCHEMA = C.TABSCHEMA AND K.TABNAME = C.TABNAME AND K.COLNAME = C.COLNAME
LEFT JOIN SYSCAT.TABCONST TC
	ON TC.CONSTNAME = K.CONSTNAME AND TC.TABSCHEMA = K.TABSCHEMA AND TC.TABNAME = K.TABNAME AND TC.TYPE IN ('P', 'F')
WHERE C.TABSCHEMA NOT LIKE 'SYS%'
ORDER BY C.TABSCHEMA, C.TABNAME, C.COLNO`,
	FetchFunctions: `SELECT
	R.ROUTINENAME AS NAME,
	TRIM(R.ROUTINESCHEMA) AS DBSCHEMA,
	CURRENT SERVER AS DBNAME,
	R.SPECIFICNAME AS SIGNATURE,
	(
		SELECT LISTAGG(COALESCE(P.PARMNAME, '') || ' ' || P.TYPENAME, ', ') WITHIN GROUP (ORDER BY P.ORDINAL)
		FROM SYSCAT.ROUTINEPARMS P
		WHERE P.ROUTINESCHEMA = R.ROUTINESCHEMA AND P.SPECIFICNAME = R.SPECIFICNAME AND P.ROWTYPE IN ('B', 'P', 'O')
	) AS ARGS,
	(
		SELECT P.TYPENAME
		FROM SYSCAT.ROUTINEPARMS P
		WHERE P.ROUTINESCHEMA = R.ROUTINESCHEMA AND P.SPECIFICNAME = R.SPECIFICNAME AND P.ROWTYPE = 'C'
		FETCH FIRST 1 ROW ONLY
	) AS RESULTTYPE,
	'connection.function' AS TREE
FROM SYSCAT.ROUTINES R
WHERE R.ROUTINETYPE = 'F' AND R.ROUTINESCHEMA NOT LIKE 'SYS%'
ORDER BY R.ROUTINESCHEMA, R.ROUTINENAME`,
	DescribeTable: `SELECT COLNAME, TYPENAME, LENGTH, SCALE, NULLS, DEFAULT
FROM SYSCAT.COLUMNS
WHERE TABSCHEMA = {{ literal .Schema }} AND TABNAME = {{ literal .Table }}
ORDER BY COLNO`,
}

var postgresQueries = Queries{
	TestConnection:  `SELECT 1`,
	CurrentDatabase: `SELECT current_database() AS "NAME"`,
	FetchTables: `SELECT
	t.table_name AS "TABLENAME",
	t.table_type = 'VIEW' AS "ISVIEW",
	(
		SELECT count(*)
		FROM information_schema.columns c
		WHERE c.table_schema = t.table_schema AND c.table_name = t.table_name
	) AS "NUMBEROFCOLUMNS",
	t.table_catalog AS "TABLECATALOG",
	current_database() AS "DBNAME",
	t.table_schema AS "TABLESCHEMA",
	CASE WHEN t.table_type = 'VIEW' THEN 'connection.views' ELSE 'connection.tables' END AS "TREE"
FROM information_schema.tables t
WHERE t.table_schema NOT IN ('pg_catalog', 'information_schema')
ORDER BY t.table_schema, t.table_name`,
	FetchColumns: `SELECT
	c.column_name AS "COLUMNNAME",
	c.column_default AS "DEFAULTVALUE",
	lower(c.is_nullable) AS "ISNULLABLE",
	c.character_maximum_length AS "Size",
	c.data_type AS "Type",
	c.table_catalog AS "TABLECATALOG",
	current_database() AS "DBNAME",
	c.table_name AS "TABLENAME",
	c.table_schema AS "TABLESCHEMA",
	(
		SELECT CASE tc.constraint_type WHEN 'PRIMARY KEY' THEN 'P' WHEN 'FOREIGN KEY' THEN 'R' END
		FROM information_schema.key_column_usage k
		JOIN information_schema.table_constraints tc
			ON tc.constraint_name = k.constraint_name AND tc.constraint_schema = k.constraint_schema
		WHERE k.table_schema = c.table_schema
			AND k.table_name = c.table_name
			AND k.column_name = c.column_name
			AND tc.constraint_type IN ('PRIMARY KEY', 'FOREIGN KEY')
		ORDER BY tc.constraint_type DESC
		LIMIT 1
	) AS "KEYTYPE",
	'connection.column' AS "TREE"
FROM information_schema.columns c
WHERE c.table_schema NOT IN ('pg_catalog', 'information_schema')
ORDER BY c.table_schema, c.table_name, c.ordinal_position`,
	FetchFunctions: `SELECT
	p.proname AS "NAME",
	n.nspname AS "DBSCHEMA",
	current_database() AS "DBNAME",
	p.proname || '(' || pg_get_function_identity_arguments(p.oid) || ')' AS "SIGNATURE",
	pg_get_function_arguments(p.oid) AS "ARGS",
	pg_get_function_result(p.oid) AS "RESULTTYPE",
	'connection.function' AS "TREE"
FROM pg_proc p
JOIN pg_namespace n ON n.oid = p.pronamespace
WHERE n.nspname NOT IN ('pg_catalog', 'information_schema')
ORDER BY n.nspname, p.proname`,
	DescribeTable: `SELECT column_name, data_type, is_nullable, column_default, character_maximum_length
FROM information_schema.columns
WHERE table_catalog = {{ literal .Database }}
	AND table_schema = {{ literal (default "public" .Schema) }}
	AND table_name = {{ literal .Table }}
ORDER BY ordinal_position`,
}

var mysqlQueries = Queries{
	TestConnection:  `SELECT 1`,
	CurrentDatabase: `SELECT DATABASE() AS NAME`,
	FetchTables: `SELECT
	t.TABLE_NAME AS TABLENAME,
	t.TABLE_TYPE = 'VIEW' AS ISVIEW,
	(
		SELECT COUNT(*)
		FROM information_schema.COLUMNS c
		WHERE c.TABLE_SCHEMA = t.TABLE_SCHEMA AND c.TABLE_NAME = t.TABLE_NAME
	) AS NUMBEROFCOLUMNS,
	t.TABLE_CATALOG AS TABLECATALOG,
	DATABASE() AS DBNAME,
	t.TABLE_SCHEMA AS TABLESCHEMA,
	IF(t.TABLE_TYPE = 'VIEW', 'connection.views', 'connection.tables') AS TREE
FROM information_schema.TABLES t
WHERE t.TABLE_SCHEMA = DATABASE()
ORDER BY t.TABLE_NAME`,
	FetchColumns: `SELECT
	c.COLUMN_NAME AS COLUMNNAME,
	c.COLUMN_DEFAULT AS DEFAULTVALUE,
	LOWER(c.IS_NULLABLE) AS ISNULLABLE,
	c.CHARACTER_MAXIMUM_LENGTH AS Size,
	c.DATA_TYPE AS Type,
	c.TABLE_CATALOG AS TABLECATALOG,
	DATABASE() AS DBNAME,
	c.TABLE_NAME AS TABLENAME,
	c.TABLE_SCHEMA AS TABLESCHEMA,
	CASE
		WHEN c.COLUMN_KEY = 'PRI' THEN 'P'
		WHEN EXISTS (
			SELECT 1
			FROM information_schema.KEY_COLUMN_USAGE k
			WHERE k.TABLE_SCHEMA = c.TABLE_SCHEMA
				AND k.TABLE_NAME = c.TABLE_NAME
				AND k.COLUMN_NAME = c.COLUMN_NAME
				AND k.REFERENCED_TABLE_NAME IS NOT NULL
		) THEN 'R'
	END AS KEYTYPE,
	'connection.column' AS TREE
FROM information_schema.COLUMNS c
WHERE c.TABLE_SCHEMA = DATABASE()
ORDER BY c.TABLE_NAME, c.ORDINAL_POSITION`,
	FetchFunctions: `SELECT
	r.ROUTINE_NAME AS NAME,
	r.ROUTINE_SCHEMA AS DBSCHEMA,
	DATABASE() AS DBNAME,
	r.SPECIFIC_NAME AS SIGNATURE,
	(
		SELECT GROUP_CONCAT(CONCAT(p.PARAMETER_NAME, ' ', p.DATA_TYPE) ORDER BY p.ORDINAL_POSITION SEPARATOR ', ')
		FROM information_schema.PARAMETERS p
		WHERE p.SPECIFIC_SCHEMA = r.ROUTINE_SCHEMA AND p.SPECIFIC_NAME = r.SPECIFIC_NAME AND p.ORDINAL_POSITION > 0
	) AS ARGS,
	r.DATA_TYPE AS RESULTTYPE,
	'connection.function' AS TREE
FROM information_schema.ROUTINES r
WHERE r.ROUTINE_SCHEMA = DATABASE() AND r.ROUTINE_TYPE = 'FUNCTION'
ORDER BY r.ROUTINE_NAME`,
	DescribeTable: `SELECT COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE, COLUMN_KEY, COLUMN_DEFAULT, EXTRA
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = {{ if .Schema }}{{ literal .Schema }}{{ else }}{{ literal .Database }}{{ end }}
	AND TABLE_NAME = {{ literal .Table }}
ORDER BY ORDINAL_POSITION`,
}

var sqliteQueries = Queries{
	TestConnection:  `SELECT 1`,
	CurrentDatabase: `SELECT 'main' AS NAME`,
	FetchTables: `SELECT
	m.name AS TABLENAME,
	m.type = 'view' AS ISVIEW,
	(SELECT count(*) FROM pragma_table_info(m.name)) AS NUMBEROFCOLUMNS,
	'main' AS TABLECATALOG,
	'main' AS DBNAME,
	'main' AS TABLESCHEMA,
	CASE m.type WHEN 'view' THEN 'connection.views' ELSE 'connection.tables' END AS TREE
FROM sqlite_master m
WHERE m.type IN ('table', 'view') AND m.name NOT LIKE 'sqlite_%'
ORDER BY m.name`,
	FetchColumns: `SELECT
	p.name AS COLUMNNAME,
	p.dflt_value AS DEFAULTVALUE,
	CASE WHEN p."notnull" = 0 THEN 'yes' ELSE 'no' END AS ISNULLABLE,
	upper(p.type) AS Type,
	'main' AS TABLECATALOG,
	'main' AS DBNAME,
	m.name AS TABLENAME,
	'main' AS TABLESCHEMA,
	CASE
		WHEN p.pk > 0 THEN 'P'
		WHEN EXISTS (SELECT 1 FROM pragma_foreign_key_list(m.name) f WHERE f."from" = p.name) THEN 'R'
	END AS KEYTYPE,
	'connection.column' AS TREE
FROM sqlite_master m
JOIN pragma_table_info(m.name) p
WHERE m.type IN ('table', 'view') AND m.name NOT LIKE 'sqlite_%'
ORDER BY m.name, p.cid`,
	FetchFunctions: `SELECT NULL AS NAME WHERE 0`,
	DescribeTable:  `SELECT * FROM pragma_table_info({{ literal .Table }}, {{ literal (default "main" .Schema) }})`,
}

var clickhouseQueries = Queries{
	TestConnection:  `SELECT 1`,
	CurrentDatabase: `SELECT currentDatabase() AS NAME`,
	FetchTables: `SELECT
	t.name AS TABLENAME,
	t.engine LIKE '%View' AS ISVIEW,
	count(c.name) AS NUMBEROFCOLUMNS,
	t.database AS TABLECATALOG,
	currentDatabase() AS DBNAME,
	t.database AS TABLESCHEMA,
	if(t.engine LIKE '%View', 'connection.views', 'connection.tables') AS TREE
FROM system.tables t
LEFT JOIN system.columns c ON c.database = t.database AND c.table = t.name
WHERE t.database = currentDatabase()
GROUP BY t.name, t.engine, t.database
ORDER BY t.name`,
	FetchColumns: `SELECT
	name AS COLUMNNAME,
	default_expression AS DEFAULTVALUE,
	if(type LIKE 'Nullable(%', 'yes', 'no') AS ISNULLABLE,
	type AS Type,
	database AS TABLECATALOG,
	currentDatabase() AS DBNAME,
	table AS TABLENAME,
	database AS TABLESCHEMA,
	if(is_in_primary_key, 'P', '') AS KEYTYPE,
	'connection.column' AS TREE
FROM system.columns
WHERE database = currentDatabase()
ORDER BY table, position`,
	FetchFunctions: `SELECT
	name AS NAME,
	'' AS DBSCHEMA,
	currentDatabase() AS DBNAME,
	name AS SIGNATURE,
	'' AS ARGS,
	'' AS RESULTTYPE,
	'connection.function' AS TREE
FROM system.functions
WHERE origin = 'SQLUserDefined'
ORDER BY name`,
}
