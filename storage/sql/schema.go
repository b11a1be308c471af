package sql

import (
	"crypto/sha1"
	"fmt"
)

type migration struct {
	key   string
	query string
}

func migQuery(query string) migration {
	return migration{
		key:   fmt.Sprintf("%x", sha1.Sum([]byte(query)))[0:8],
		query: query,
	}
}

// seq keeps rows in insertion order; on MySQL it is an AUTO_INCREMENT column.
func migrations() []migration {
	var queries []migration

	// Users
	queries = append(queries, migQuery("create table users ("+
		"`seq`   integer      primary key,"+
		"`user`  varchar(64)  not null,"+
		"`name`  varchar(128) default '' not null,"+
		"`email` varchar(128) default null"+
		");"))
	queries = append(queries, migQuery("create unique index users_user on users(`user`);"))

	// Memberships
	queries = append(queries, migQuery("create table memberships ("+
		"`seq`  integer     primary key,"+
		"`id`   varchar(64) not null,"+
		"`user` varchar(64) not null,"+
		"`role` varchar(64) default '' not null"+
		");"))
	queries = append(queries, migQuery("create unique index memberships_id on memberships(`id`);"))
	queries = append(queries, migQuery("create index memberships_user on memberships(`user`);"))

	return queries
}
