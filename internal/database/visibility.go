package database

// Правила видимости публикаций.
//
// Публикация "живая" (видна всем читателям), когда выполняются все четыре
// условия: публикация опубликована, у неё есть категория, категория
// опубликована и время публикации уже наступило. Граница по времени — строго
// `pub_date <= now`: публикация становится видимой ровно в назначенный момент.
// Предикат существует в одном экземпляре и подставляется во все запросы
// списков и в запрос деталей, чтобы все страницы считали видимость одинаково.
//
// now всегда передаётся параметром запроса, а не берётся внутри пакета:
// так предикат проверяется тестами с фиксированными часами.
const postIsLive = `p.is_published = 1
	    AND p.category_id IS NOT NULL
	    AND c.is_published = 1
	    AND p.pub_date <= ?`

// postSelect — общая выборка публикации со связанными данными и количеством
// комментариев. Сортировка списков: новые по pub_date первыми, при равенстве
// дат — порядок добавления.
const postSelect = `SELECT p.id, p.title, p.text, p.pub_date, p.user_id,
	       p.location_id, p.category_id, p.is_published, p.image, p.created,
	       u.username, l.name, c.title, c.slug,
	       (SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id) AS comment_count
	FROM posts p
	JOIN users u ON p.user_id = u.id
	LEFT JOIN locations l ON p.location_id = l.id
	LEFT JOIN categories c ON p.category_id = c.id`

const postOrder = ` ORDER BY p.pub_date DESC, p.id ASC`
