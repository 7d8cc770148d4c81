package driver

var IndexQueries = []string{
	"CREATE INDEX ON :User(login);",
	"CREATE INDEX ON :User(run_id);",
}

// Export queries take a list parameter and UNWIND it, one round trip per list.
const (
	// $users: [{login, rank, position, avatar_url, categories}]
	SaveUsersQuery = `
		UNWIND $users AS row
		MERGE (u:User {login: row.login})
		SET u.rank = row.rank,
			u.position = row.position,
			u.avatar_url = row.avatar_url,
			u.categories = row.categories,
			u.run_id = $run_id,
			u.ranked_at = $ranked_at
		RETURN count(u) AS saved
	`

	// $follows: [{source, target}]
	SaveFollowsQuery = `
		UNWIND $follows AS row
		MATCH (source:User {login: row.source})
		MATCH (target:User {login: row.target})
		MERGE (source)-[f:FOLLOWS]->(target)
		SET f.run_id = $run_id
		RETURN count(f) AS saved
	`

	GetRunUsersQuery = `
		MATCH (u:User {run_id: $run_id})
		RETURN u.login AS login, u.rank AS rank, u.position AS position
		ORDER BY u.position
	`
)
