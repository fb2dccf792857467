package services

const contentSearchQuery = `query contentSearch($query: String!, $limit: Int = 10, $skip: Int = 0) {
  contentSearch(query: $query, limit: $limit, skip: $skip) {
    total
    content {
      contentId
      mediaId
      contentType
      feedType
      callSign
      language
      mediaState {
        state
        mediaType
        contentExperience
      }
      fields {
        name
        value
      }
    }
  }
}`

const initSessionQuery = `mutation initSession($device: InitSessionInput!, $clientType: ClientType!, $experience: ExperienceTypeInput) {
  initSession(device: $device, clientType: $clientType, experience: $experience) {
    deviceId
    sessionId
    entitlements {
      code
    }
    clientExperience
    features
  }
}`

const initPlaybackSessionQuery = `mutation initPlaybackSession(
  $adCapabilities: [AdExperienceType]
  $mediaId: String!
  $deviceId: String!
  $sessionId: String!
  $quality: PlaybackQuality
) {
  initPlaybackSession(
    adCapabilities: $adCapabilities
    mediaId: $mediaId
    deviceId: $deviceId
    sessionId: $sessionId
    quality: $quality
  ) {
    playbackSessionId
    playback {
      url
      token
      expiration
      cdn
    }
    heartbeatInfo {
      url
      interval
    }
  }
}`

// contentSearchFilter selects the game streams for one game.
const contentSearchFilter = `GamePk=%d AND ContentType="GAME" RETURNING HomeTeamId, HomeTeamName, AwayTeamId, AwayTeamName, Date, MediaType, ContentExperience, MediaState, PartnerCallLetters`

const contentSearchLimit = 16
