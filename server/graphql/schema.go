// Package graphql holds the schema-first GraphQL definition of the API.
package graphql

// Schema is parsed once at startup; resolver methods live in
// server/resolvers.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	scalar Time

	type Query {
		getActivities(limit: Int, offset: Int): PaginatedActivities!
		getLatestActivities: [Activity!]!
		getActivitiesByUser(limit: Int, offset: Int): PaginatedActivities!
		getCities: [String!]!
		getActivitiesByCity(city: String!, activity: String, price: Int, limit: Int, offset: Int): PaginatedActivities!
		getActivity(id: ID!): Activity!
		getMyFavorites: [Favorite!]!
		getMyFavoritedActivityIds: [String!]!
	}

	type Mutation {
		register(input: SignUpInput!): User!
		login(input: SignInInput!): SignInPayload!
		logout: Boolean!
		createActivity(input: CreateActivityInput!): Activity!
		deleteActivity(id: ID!): Boolean!
		toggleFavorite(activityId: ID!): Boolean!
		reorderFavorites(activityIds: [String!]!): [Favorite!]!
	}

	type Activity {
		id: ID!
		name: String!
		city: String!
		price: Int!
		description: String!
		owner: User
		createdAt: Time!
	}

	type Favorite {
		id: ID!
		activity: Activity!
		order: Int!
		createdAt: Time!
	}

	type User {
		id: ID!
		email: String!
		name: String!
		createdAt: Time!
	}

	type SignInPayload {
		user: User!
	}

	type PaginatedActivities {
		items: [Activity!]!
		total: Int!
	}

	input SignUpInput {
		email: String!
		name: String!
		password: String!
	}

	input SignInInput {
		email: String!
		password: String!
	}

	input CreateActivityInput {
		name: String!
		city: String!
		price: Int!
		description: String!
	}
`
