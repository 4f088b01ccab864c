package sqlinline

const QInsertDonation = `--sql 4e5f6a7b-8c9d-4e0f-9a1b-2c3d4e5f6a7b
insert into donations(id, project_id, user_id, amount, payment_method, created_at)
values (gen_random_uuid(), $1::uuid, nullif($2::text, '')::uuid, $3::bigint, $4::text, now())
returning id, project_id, user_id, amount, payment_method, created_at;
`

const QListRecentDonations = `--sql 6a7b8c9d-0e1f-4a2b-9c3d-4e5f6a7b8c9d
select id, project_id, user_id, amount, payment_method, created_at
from donations
order by created_at desc
limit $1::int;
`
