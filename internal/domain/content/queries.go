package content

// GraphQL documents for the pages the site renders. Asset fields always
// request url plus caption/altText so enrichment has everything it needs.

const queryRooms = `
query Rooms {
  rooms(orderBy: basePrice_ASC) {
    name
    slug
    description
    basePrice
    maxGuests
    images { url caption altText }
  }
}`

const queryRoomBySlug = `
query RoomBySlug($slug: String!) {
  room(where: {slug: $slug}) {
    name
    slug
    description
    basePrice
    maxGuests
    images { url caption altText }
  }
}`

const queryOutlets = `
query Outlets {
  outlets {
    name
    slug
    description
    images { url caption altText }
  }
}`

const queryOutletBySlug = `
query OutletBySlug($slug: String!) {
  outlet(where: {slug: $slug}) {
    name
    slug
    description
    images { url caption altText }
  }
}`

const queryExperiences = `
query Experiences {
  experiences {
    title
    description
    image { url caption altText }
  }
}`

const queryTestimonials = `
query Testimonials {
  testimonials(first: 20) {
    quote
    author
  }
}`

const querySlides = `
query Slides {
  slides {
    title
    subtitle
    displayOrder
    active
    image { url caption altText }
  }
}`

const querySubHero = `
query SubHero {
  subHero {
    image { url caption altText }
  }
}`

const queryDeal = `
query Deal {
  deal {
    title
    description
    validFrom
    validUntil
    image { url caption altText }
  }
}`

const queryGallery = `
query Gallery($page: String!) {
  galleryItems(where: {page: $page}) {
    caption
    image { url caption altText }
  }
}`
