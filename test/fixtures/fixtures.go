// Package fixtures provides Confluence page HTML fixtures for testing
// the group parser.
package fixtures

// GenerateGroupPage creates a full group page: a noice limit in the page
// body, two posts, replies with a review verdict, and likes.
func GenerateGroupPage() string {
	return `
<!DOCTYPE html>
<html>
<head><title>tech - Noice Board</title></head>
<body>
<h1 id="title-text">tech</h1>
<div id="main-content">
    <p>Engineering wins and shoutouts.</p>
    <p>[[ NoiceLimit: 50 ]]</p>
</div>
<div id="comments-section">
    <div class="comment" data-comment-id="101">
        <a class="comment-author" data-username="alicedev">Alice Developer</a>
        <time class="comment-date" datetime="2026-08-01T09:30:00Z">Aug 1</time>
        <div class="comment-body"><p>Shipped the new ingest pipeline, throughput doubled overnight. [[ HashTag: release,pipeline ]]</p></div>
        <div class="comment-likes">
            <a class="like-user" data-username="bobdesigner">Bob</a>
            <a class="like-user" data-username="charliepm">Charlie</a>
        </div>
    </div>
    <div class="comment reply" data-comment-id="102">
        <a class="comment-author" data-username="charliepm">Charlie PM</a>
        <time class="comment-date" datetime="2026-08-01T10:00:00Z">Aug 1</time>
        <div class="comment-body"><p>[[ Review: SCHEDULED ]] Demo booked for Friday.</p></div>
    </div>
    <div class="comment reply" data-comment-id="103">
        <a class="comment-author" data-username="bobdesigner">Bob Designer</a>
        <time class="comment-date" datetime="2026-08-01T10:15:00Z">Aug 1</time>
        <div class="comment-body"><p>Huge win, congrats!</p></div>
    </div>
    <div class="comment" data-comment-id="104">
        <a class="comment-author" data-username="bobdesigner">Bob Designer</a>
        <time class="comment-date" datetime="2026-08-02T14:00:00Z">Aug 2</time>
        <div class="comment-body"><p>Cleaned up the flaky integration suite.</p></div>
    </div>
</div>
</body>
</html>
`
}

// GenerateGroupPageWithoutLimit creates a page with no NoiceLimit tag so
// the parser falls back to the default.
func GenerateGroupPageWithoutLimit() string {
	return `
<!DOCTYPE html>
<html>
<head><title>design - Noice Board</title></head>
<body>
<h1 id="title-text">design</h1>
<div id="main-content">
    <p>Design reviews and explorations.</p>
</div>
<div id="comments-section">
    <div class="comment" data-comment-id="201">
        <a class="comment-author" data-username="bobdesigner">Bob Designer</a>
        <time class="comment-date" datetime="2026-08-03T11:00:00Z">Aug 3</time>
        <div class="comment-body"><p>New icon set draft is ready for comments. [[ HashTag: #icons ]]</p></div>
    </div>
</div>
</body>
</html>
`
}

// GenerateGroupPageWithReviewOverride creates a post whose replies carry
// two review verdicts; the later one must win.
func GenerateGroupPageWithReviewOverride() string {
	return `
<!DOCTYPE html>
<html>
<head><title>tech - Noice Board</title></head>
<body>
<h1 id="title-text">tech</h1>
<div id="main-content"><p>[[ NoiceLimit: 10 ]]</p></div>
<div id="comments-section">
    <div class="comment" data-comment-id="301">
        <a class="comment-author" data-username="alicedev">Alice Developer</a>
        <time class="comment-date" datetime="2026-08-04T08:00:00Z">Aug 4</time>
        <div class="comment-body"><p>Prototype of the mobile onboarding flow.</p></div>
    </div>
    <div class="comment reply" data-comment-id="302">
        <a class="comment-author" data-username="charliepm">Charlie PM</a>
        <div class="comment-body"><p>[[ Review: SCHEDULED ]]</p></div>
    </div>
    <div class="comment reply" data-comment-id="303">
        <a class="comment-author" data-username="charliepm">Charlie PM</a>
        <div class="comment-body"><p>[[ Review: COMPLETED ]] Looks great, shipping as is.</p></div>
    </div>
</div>
</body>
</html>
`
}

// GenerateEmptyGroupPage creates a page with a title but no comments.
func GenerateEmptyGroupPage() string {
	return `
<!DOCTYPE html>
<html>
<head><title>general - Noice Board</title></head>
<body>
<h1 id="title-text">general</h1>
<div id="main-content"><p>Anything goes.</p></div>
<div id="comments-section"></div>
</body>
</html>
`
}

// GenerateBrokenPage creates a page without the title element, which the
// parser treats as an unusable page.
func GenerateBrokenPage() string {
	return `
<!DOCTYPE html>
<html>
<head><title>error</title></head>
<body>
<div class="error">Page not found</div>
</body>
</html>
`
}
