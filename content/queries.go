package content

import "folio/gql"

// DefaultPageSize is the number of posts fetched by ListRecentPosts.
const DefaultPageSize = 10

const recentPostsQuery = `query RecentPosts($host: String!, $first: Int!) {
  publication(host: $host) {
    posts(first: $first) {
      edges {
        node {
          id
          title
          slug
          publishedAt
          coverImage {
            url
          }
        }
      }
    }
  }
}`

const pageBySlugQuery = `query PageBySlug($host: String!, $slug: String!) {
  publication(host: $host) {
    staticPage(slug: $slug) {
      id
      slug
      title
      content {
        html
      }
      seo {
        description
      }
    }
  }
}`

var (
	recentPostsDoc = gql.MustParseDocument(recentPostsQuery)
	pageBySlugDoc  = gql.MustParseDocument(pageBySlugQuery)
)
