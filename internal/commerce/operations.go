// internal/commerce/operations.go
//
// Operation documents for the remote commerce GraphQL API. The checkout
// selection is shared by every checkout mutation so each response can replace
// local state wholesale.
package commerce

const checkoutSelection = `
  id
  token
  email
  lines {
    id
    quantity
    variant {
      id
      name
      sku
      product {
        name
        thumbnail {
          url
        }
      }
      pricing {
        price {
          gross {
            amount
            currency
          }
        }
      }
    }
    totalPrice {
      gross {
        amount
        currency
      }
    }
  }
  totalPrice {
    gross {
      amount
      currency
    }
  }
  subtotalPrice {
    gross {
      amount
      currency
    }
  }
  shippingPrice {
    gross {
      amount
      currency
    }
  }
  user {
    id
    email
  }
  shippingAddress {
    id
    firstName
    lastName
    streetAddress1
    streetAddress2
    city
    postalCode
    country {
      code
      country
    }
    phone
  }
  billingAddress {
    id
    firstName
    lastName
    streetAddress1
    city
    postalCode
  }
  shippingMethod {
    id
    name
  }
  availableShippingMethods {
    id
    name
    price {
      amount
      currency
    }
  }
  availablePaymentGateways {
    id
    name
  }
  discount {
    amount
    currency
  }
  discountName
`

const tokenCreateOp = `
mutation TokenCreate($email: String!, $password: String!) {
  tokenCreate(email: $email, password: $password) {
    token
    refreshToken
    errors {
      field
      message
      code
    }
  }
}`

const tokenRefreshOp = `
mutation TokenRefresh($refreshToken: String!) {
  tokenRefresh(refreshToken: $refreshToken) {
    token
    errors {
      field
      message
    }
  }
}`

const accountRegisterOp = `
mutation AccountRegister($input: AccountRegisterInput!) {
  accountRegister(input: $input) {
    user {
      id
      email
      firstName
      lastName
    }
    errors {
      field
      message
      code
    }
  }
}`

const accountUpdateOp = `
mutation AccountUpdate($input: AccountInput!) {
  accountUpdate(input: $input) {
    user {
      id
      email
      firstName
      lastName
    }
    errors {
      field
      message
    }
  }
}`

const meOp = `
query GetMe {
  me {
    id
    email
    firstName
    lastName
    addresses {
      id
      firstName
      lastName
      streetAddress1
      streetAddress2
      city
      postalCode
      country {
        code
        country
      }
      phone
    }
  }
}`

const myOrdersOp = `
query GetMyOrders($first: Int!, $after: String) {
  me {
    id
    orders(first: $first, after: $after) {
      pageInfo {
        hasNextPage
        endCursor
      }
      edges {
        node {
          id
          number
          created
          status
          total {
            gross {
              amount
              currency
            }
          }
        }
      }
    }
  }
}`

const orderByIDOp = `
query GetOrderDetails($id: ID!) {
  order(id: $id) {
    id
    number
    created
    status
    total {
      gross {
        amount
        currency
      }
    }
    subtotal {
      gross {
        amount
        currency
      }
    }
    shippingPrice {
      gross {
        amount
        currency
      }
    }
    lines {
      id
      productName
      variantName
      quantity
      totalPrice {
        gross {
          amount
          currency
        }
      }
      thumbnail {
        url
      }
      variant {
        id
        product {
          id
          slug
        }
      }
    }
    shippingAddress {
      firstName
      lastName
      streetAddress1
      streetAddress2
      city
      postalCode
      country {
        code
        country
      }
      phone
    }
  }
}`

const productsOp = `
query GetProducts($first: Int!, $after: String, $filter: ProductFilterInput, $sortBy: ProductOrder, $channel: String!) {
  products(first: $first, after: $after, filter: $filter, sortBy: $sortBy, channel: $channel) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        name
        slug
        description
        category {
          id
          name
        }
        thumbnail {
          url
          alt
        }
        variants {
          id
          quantityAvailable
          pricing {
            price {
              gross {
                amount
                currency
              }
            }
          }
        }
      }
    }
  }
}`

const productBySlugOp = `
query GetProductDetails($slug: String!, $channel: String!) {
  product(slug: $slug, channel: $channel) {
    id
    name
    slug
    description
    category {
      id
      name
    }
    thumbnail {
      url
      alt
    }
    pricing {
      priceRange {
        start {
          gross {
            amount
            currency
          }
        }
        stop {
          gross {
            amount
            currency
          }
        }
      }
    }
    variants {
      id
      name
      sku
      quantityAvailable
      pricing {
        price {
          gross {
            amount
            currency
          }
        }
      }
    }
  }
}`

const categoriesOp = `
query GetCategories($first: Int!, $channel: String!) {
  categories(first: $first) {
    edges {
      node {
        id
        name
        slug
        products(channel: $channel) {
          totalCount
        }
      }
    }
  }
}`

const checkoutCreateOp = `
mutation CheckoutCreate($input: CheckoutCreateInput!) {
  checkoutCreate(input: $input) {
    checkout {` + checkoutSelection + `}
    errors {
      field
      message
      code
    }
  }
}`

const checkoutByIDOp = `
query GetCheckout($id: ID!) {
  checkout(id: $id) {` + checkoutSelection + `}
}`

const checkoutLinesAddOp = `
mutation CheckoutLinesAdd($id: ID!, $lines: [CheckoutLineInput!]!) {
  checkoutLinesAdd(id: $id, lines: $lines) {
    checkout {` + checkoutSelection + `}
    errors {
      field
      message
      code
    }
  }
}`

const checkoutLinesUpdateOp = `
mutation CheckoutLinesUpdate($id: ID!, $lines: [CheckoutLineUpdateInput!]!) {
  checkoutLinesUpdate(id: $id, lines: $lines) {
    checkout {` + checkoutSelection + `}
    errors {
      field
      message
      code
    }
  }
}`

const checkoutLinesDeleteOp = `
mutation CheckoutLinesDelete($id: ID!, $linesIds: [ID!]!) {
  checkoutLinesDelete(id: $id, linesIds: $linesIds) {
    checkout {` + checkoutSelection + `}
    errors {
      field
      message
    }
  }
}`

const checkoutEmailUpdateOp = `
mutation CheckoutEmailUpdate($id: ID!, $email: String!) {
  checkoutEmailUpdate(id: $id, email: $email) {
    checkout {` + checkoutSelection + `}
    errors {
      field
      message
    }
  }
}`

const checkoutCustomerAttachOp = `
mutation CheckoutCustomerAttach($id: ID!) {
  checkoutCustomerAttach(id: $id) {
    checkout {` + checkoutSelection + `}
    errors {
      field
      message
    }
  }
}`

const checkoutShippingAddressUpdateOp = `
mutation CheckoutShippingAddressUpdate($id: ID!, $shippingAddress: AddressInput!) {
  checkoutShippingAddressUpdate(id: $id, shippingAddress: $shippingAddress) {
    checkout {` + checkoutSelection + `}
    errors {
      field
      message
    }
  }
}`

const checkoutBillingAddressUpdateOp = `
mutation CheckoutBillingAddressUpdate($id: ID!, $billingAddress: AddressInput!) {
  checkoutBillingAddressUpdate(id: $id, billingAddress: $billingAddress) {
    checkout {` + checkoutSelection + `}
    errors {
      field
      message
    }
  }
}`

const checkoutDeliveryMethodUpdateOp = `
mutation CheckoutDeliveryMethodUpdate($id: ID!, $deliveryMethodId: ID!) {
  checkoutDeliveryMethodUpdate(id: $id, deliveryMethodId: $deliveryMethodId) {
    checkout {` + checkoutSelection + `}
    errors {
      field
      message
    }
  }
}`

const checkoutAddPromoCodeOp = `
mutation CheckoutAddPromoCode($id: ID!, $promoCode: String!) {
  checkoutAddPromoCode(id: $id, promoCode: $promoCode) {
    checkout {` + checkoutSelection + `}
    errors {
      field
      message
      code
    }
  }
}`

const checkoutRemovePromoCodeOp = `
mutation CheckoutRemovePromoCode($id: ID!, $promoCode: String!) {
  checkoutRemovePromoCode(id: $id, promoCode: $promoCode) {
    checkout {` + checkoutSelection + `}
    errors {
      field
      message
    }
  }
}`

const checkoutPaymentCreateOp = `
mutation CheckoutPaymentCreate($id: ID!, $input: PaymentInput!) {
  checkoutPaymentCreate(id: $id, input: $input) {
    payment {
      id
      gateway
      total {
        amount
        currency
      }
    }
    errors {
      field
      message
    }
  }
}`

const checkoutCompleteOp = `
mutation CheckoutComplete($id: ID!) {
  checkoutComplete(id: $id) {
    order {
      id
      number
    }
    errors {
      field
      message
      code
    }
  }
}`
